// Package pdf reads PDF files on behalf of the renamer: first page plain text through
// ledongthuc/pdf and structural inspection through pdfcpu.
package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls the plain text of the first page of a PDF file.
type TextExtractor struct {
	maxFileSize int64
	logger      *slog.Logger
}

// NewTextExtractor creates an extractor that refuses files larger than maxFileSize bytes.
// A non-positive maxFileSize disables the limit.
func NewTextExtractor(maxFileSize int64, logger *slog.Logger) *TextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextExtractor{
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// FirstPageText returns the plain text of page 1. The text may be empty for scanned or
// image-only pages; deciding what that means is up to the caller.
func (e *TextExtractor) FirstPageText(path string) (text string, err error) {
	if err := checkFile(path, e.maxFileSize); err != nil {
		return "", err
	}

	// ledongthuc/pdf panics on some malformed files, both while parsing the xref and while reading pages.
	op := "open"
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Path: path, Op: op, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", &ExtractionError{Path: path, Op: "open", Err: err}
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", &ExtractionError{Path: path, Op: "open", Err: err}
	}

	op = "read page"
	if reader.NumPage() < 1 {
		return "", &ExtractionError{Path: path, Op: "read page", Err: ErrNoPages}
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return "", &ExtractionError{Path: path, Op: "read page", Err: ErrNoPages}
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", &ExtractionError{Path: path, Op: "extract text", Err: err}
	}

	e.logger.Debug("pdf.first_page", "path", path, "chars", len(text))
	return text, nil
}

// checkFile verifies path names a regular .pdf file within the size limit.
func checkFile(path string, maxFileSize int64) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return &ExtractionError{Path: path, Op: "stat", Err: err}
	}
	if info.IsDir() {
		return &ExtractionError{Path: path, Op: "stat", Err: fmt.Errorf("%w: path is a directory", ErrNotPDF)}
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return &ExtractionError{Path: path, Op: "stat", Err: ErrNotPDF}
	}
	if maxFileSize > 0 && info.Size() > maxFileSize {
		return &ExtractionError{
			Path: path,
			Op:   "stat",
			Err:  fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrFileTooLarge, info.Size(), maxFileSize),
		}
	}
	return nil
}
