package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-renamer/internal/pdf/pdftest"
)

func TestInspector_Inspect(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "a.pdf", "Title/Titre: Inspect me", "Number/Numéro: 1")

	info, err := NewInspector(1024 * 1024).Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, 1, info.Pages)
	assert.False(t, info.Encrypted)
	assert.Equal(t, "1.4", info.Version)
}

func TestInspector_Preflight(t *testing.T) {
	dir := t.TempDir()
	good := pdftest.WriteFile(t, dir, "good.pdf", "Title/Titre: ok")

	corrupt := filepath.Join(dir, "corrupt.pdf")
	require.NoError(t, os.WriteFile(corrupt, []byte("%PDF-1.4\nnot a document"), 0o644))

	inspector := NewInspector(0)
	assert.NoError(t, inspector.Preflight(good))

	err := inspector.Preflight(corrupt)
	require.Error(t, err)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "inspect", extractionErr.Op)
}

func TestInspector_SizeLimit(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "big.pdf", "Title/Titre: too big for ten bytes")

	_, err := NewInspector(10).Inspect(path)
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}
