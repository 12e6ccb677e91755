package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Inspection summarizes the structure of a PDF file.
type Inspection struct {
	Path      string `json:"path"`
	Pages     int    `json:"pages"`
	Version   string `json:"version"`
	Encrypted bool   `json:"encrypted"`
}

// Inspector reads document structure with pdfcpu.
type Inspector struct {
	maxFileSize int64
}

// NewInspector creates an inspector with the given file size limit.
func NewInspector(maxFileSize int64) *Inspector {
	return &Inspector{maxFileSize: maxFileSize}
}

// Inspect parses the cross reference table of path and reports page count and encryption.
func (i *Inspector) Inspect(path string) (*Inspection, error) {
	if err := checkFile(path, i.maxFileSize); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, &ExtractionError{Path: path, Op: "inspect", Err: fmt.Errorf("failed to read PDF context: %w", err)}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &ExtractionError{Path: path, Op: "inspect", Err: fmt.Errorf("failed to count pages: %w", err)}
	}

	return &Inspection{
		Path:      path,
		Pages:     ctx.PageCount,
		Version:   ctx.HeaderVersion.String(),
		Encrypted: ctx.Encrypt != nil,
	}, nil
}

// Preflight rejects files the text extractor cannot use: unreadable structure,
// encryption or an empty page tree.
func (i *Inspector) Preflight(path string) error {
	info, err := i.Inspect(path)
	if err != nil {
		return err
	}
	if info.Encrypted {
		return &ExtractionError{Path: path, Op: "preflight", Err: ErrEncrypted}
	}
	if info.Pages < 1 {
		return &ExtractionError{Path: path, Op: "preflight", Err: ErrNoPages}
	}
	return nil
}
