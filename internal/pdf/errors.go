package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPages is returned when a document has no readable first page.
	ErrNoPages = errors.New("document has no pages")
	// ErrFileTooLarge is returned when a file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrEncrypted is returned by preflight for password protected documents.
	ErrEncrypted = errors.New("document is encrypted")
	// ErrNotPDF is returned for paths that are not regular .pdf files.
	ErrNotPDF = errors.New("not a PDF file")
)

// ExtractionError records which operation failed on which file.
type ExtractionError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
