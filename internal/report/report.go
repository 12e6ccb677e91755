// Package report writes the rename log of a batch run.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Header is the first row of every rename log.
var Header = []string{"Original Filename", "New Filename", "Status"}

// Row is one processed file.
type Row struct {
	Original string
	New      string
	Status   string
}

func (r Row) values() []string {
	return []string{r.Original, r.New, r.Status}
}

const timestampLayout = "20060102_150405"

// LogPath returns a path for a new rename log in dir named after startedAt,
// rename_log_YYYYMMDD_HHMMSS.csv. When that file already exists a _2, _3, ... suffix
// is added so an earlier log is never replaced.
func LogPath(dir string, startedAt time.Time) (string, error) {
	base := "rename_log_" + startedAt.Format(timestampLayout)
	candidate := filepath.Join(dir, base+".csv")
	for n := 2; ; n++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("cannot check log path %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d.csv", base, n))
	}
}

// WriteCSV writes the header and rows as UTF-8, comma delimited CSV.
func WriteCSV(path string, rows []Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close log file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write log header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.values()); err != nil {
			return fmt.Errorf("failed to write log row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush log file: %w", err)
	}
	return nil
}
