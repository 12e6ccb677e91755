package renamer

import (
	"time"

	"github.com/google/uuid"
)

// StatusSuccess is the outcome status of a clean rename.
const StatusSuccess = "Success"

// errorStatusPrefix starts the status of every failed outcome.
const errorStatusPrefix = "ERROR: "

// Outcome is the result of processing one file.
type Outcome struct {
	Original string `json:"original"`
	New      string `json:"new"`
	Status   string `json:"status"`
}

// OK reports whether the file was renamed.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

// BatchRun is one pass over the PDF files of a directory.
type BatchRun struct {
	ID        uuid.UUID `json:"id"`
	Directory string    `json:"directory"`
	Prefix    string    `json:"prefix"`
	StartedAt time.Time `json:"started_at"`

	// Outcomes are in directory listing order, one per PDF file.
	Outcomes []Outcome `json:"outcomes"`

	// LogPath is empty when the directory held no PDF files.
	LogPath         string `json:"log_path"`
	SpreadsheetPath string `json:"spreadsheet_path,omitempty"`
}

// Succeeded returns the number of renamed files.
func (b *BatchRun) Succeeded() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be renamed.
func (b *BatchRun) Failed() int {
	return len(b.Outcomes) - b.Succeeded()
}

// TextSource supplies the plain text of the first page of a PDF file.
type TextSource interface {
	FirstPageText(path string) (string, error)
}

// Preflighter rejects files before text extraction.
type Preflighter interface {
	Preflight(path string) error
}

// Reporter receives batch totals once the rename log is written.
type Reporter interface {
	RecordBatch(total int, option string)
}
