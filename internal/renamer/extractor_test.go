package renamer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-renamer/internal/pdf"
	"github.com/a3tai/pdf-renamer/internal/pdf/pdftest"
)

func TestRun_RealExtractorWithCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	pdftest.WriteFile(t, dir, "1.pdf", "Title/Titre: One", "Number/Numéro: 1")
	pdftest.WriteFile(t, dir, "2.pdf", "Title/Titre: Two", "Number/Numéro: 2")
	broken := pdftest.WithStartXref(pdftest.Build("Title/Titre: Three", "Number/Numéro: 3"), 9470)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "3.pdf"), broken, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "4.pdf"), []byte("%PDF-1.4\ngarbage"), 0o644))
	pdftest.WriteFile(t, dir, "5.pdf", "Title/Titre: Five", "Number/Numéro: 5")

	listener := &recordingListener{}
	r := New(pdf.NewTextExtractor(0, nil), Options{Now: fixedClock})

	var run *BatchRun
	var err error
	require.NotPanics(t, func() {
		run, err = r.Run(dir, "", listener)
	})
	require.NoError(t, err)

	require.Len(t, run.Outcomes, 5)
	assert.Equal(t, 3, run.Succeeded())
	assert.Equal(t, 2, run.Failed())
	for _, i := range []int{2, 3} {
		assert.True(t, strings.HasPrefix(run.Outcomes[i].Status, "ERROR: "), run.Outcomes[i].Status)
		assert.Empty(t, run.Outcomes[i].New)
	}

	assert.FileExists(t, filepath.Join(dir, "One - 1.pdf"))
	assert.FileExists(t, filepath.Join(dir, "Two - 2.pdf"))
	assert.FileExists(t, filepath.Join(dir, "3.pdf"))
	assert.FileExists(t, filepath.Join(dir, "4.pdf"))
	assert.FileExists(t, filepath.Join(dir, "Five - 5.pdf"))

	records := readLog(t, run.LogPath)
	require.Len(t, records, 6)
	assert.Equal(t, "3.pdf", records[3][0])
	assert.Empty(t, listener.errors)
	assert.Equal(t, []string{run.LogPath}, listener.completed)
}
