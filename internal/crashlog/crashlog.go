// Package crashlog records unrecovered failures to a timestamped text file
// so they survive the process.
package crashlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// FileName returns the crash log name for t, error_log_YYYYMMDD_HHMMSS.txt.
func FileName(t time.Time) string {
	return "error_log_" + t.Format("20060102_150405") + ".txt"
}

// Write stores value and stack in dir and returns the file path.
func Write(dir string, now time.Time, value any, stack []byte) (string, error) {
	path := filepath.Join(dir, FileName(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create crash log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "Uncaught exception: %v\n\n%s", value, stack); err != nil {
		return "", fmt.Errorf("failed to write crash log: %w", err)
	}
	return path, nil
}

// Handle reports value on stderr and persists it to the working directory.
// It returns the crash log path, or "" when the file could not be written.
func Handle(stderr io.Writer, value any) string {
	fmt.Fprintf(stderr, "Uncaught exception: %v\n", value)

	path, err := Write(".", time.Now(), value, debug.Stack())
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return ""
	}
	return path
}
