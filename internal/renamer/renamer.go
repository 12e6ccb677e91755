// Package renamer renames the PDF files of a directory after the title and number
// printed on their first page.
package renamer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/pdf-renamer/internal/fields"
	"github.com/a3tai/pdf-renamer/internal/report"
	"github.com/a3tai/pdf-renamer/internal/telemetry"
)

// ErrNoText is recorded for files whose first page yields no text.
var ErrNoText = errors.New("No text found on page 1") //nolint:staticcheck // shown verbatim to operators

// Options configures a Renamer. The zero value is usable.
type Options struct {
	Conflict ConflictPolicy
	// Spreadsheet also writes an .xlsx copy of the rename log.
	Spreadsheet bool
	// Preflight, when set, runs before text extraction for every file.
	Preflight Preflighter
	Reporter  Reporter
	Logger    *slog.Logger
	Now       func() time.Time
}

// Renamer runs batch renames. One Renamer may serve several runs, but runs against
// the same directory must not overlap.
type Renamer struct {
	source    TextSource
	conflict  ConflictPolicy
	sheet     bool
	preflight Preflighter
	reporter  Reporter
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Renamer reading page text from source.
func New(source TextSource, opts Options) *Renamer {
	r := &Renamer{
		source:    source,
		conflict:  opts.Conflict,
		sheet:     opts.Spreadsheet,
		preflight: opts.Preflight,
		reporter:  opts.Reporter,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if r.conflict == "" {
		r.conflict = ConflictFail
	}
	if r.reporter == nil {
		r.reporter = telemetry.Nop{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Start runs the batch on a new goroutine. The returned channel is closed after the
// listener has received OnComplete or OnError. A started run cannot be cancelled.
func (r *Renamer) Start(dir, prefix string, l Listener) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("batch.panic", "directory", dir, "panic", p)
				listenerOrNop(l).OnError(fmt.Sprintf("An error occurred: %v", p))
			}
		}()
		_, _ = r.Run(dir, prefix, l)
	}()
	return done
}

// Run renames every PDF file in dir to "<prefix><title> - <number>.pdf" and writes a
// rename log into dir. Failures on a single file are recorded in its outcome and do not
// stop the run. The returned error covers failures that prevent listing the directory
// or writing the log; the listener receives it through OnError.
func (r *Renamer) Run(dir, prefix string, l Listener) (*BatchRun, error) {
	l = listenerOrNop(l)

	run, err := r.run(dir, prefix, l)
	if err != nil {
		r.logger.Error("batch.failed", "directory", dir, "error", err)
		l.OnError(fmt.Sprintf("An error occurred: %v", err))
		return nil, err
	}

	l.OnComplete(run.LogPath)
	return run, nil
}

func (r *Renamer) run(dir, prefix string, l Listener) (*BatchRun, error) {
	run := &BatchRun{
		ID:        uuid.New(),
		Directory: dir,
		Prefix:    prefix,
		StartedAt: r.now(),
		Outcomes:  []Outcome{},
	}
	logger := r.logger.With("run", run.ID.String())

	names, err := ListPDFs(dir)
	if err != nil {
		return nil, err
	}

	total := len(names)
	if total == 0 {
		logger.Debug("batch.empty", "directory", dir)
		l.OnLog("No PDF files found in the selected folder.")
		return run, nil
	}

	logger.Info("batch.start", "directory", dir, "files", total, "prefix", prefix, "conflict", string(r.conflict))
	l.OnLog(fmt.Sprintf("Found %d PDF files to process.", total))

	for i, name := range names {
		l.OnProgress(i+1, total)
		l.OnLog("Processing: " + name)

		outcome := r.process(dir, prefix, name, l)
		run.Outcomes = append(run.Outcomes, outcome)
		l.OnFileResult(outcome.Original, outcome.New, outcome.Status)
	}

	if err := r.writeLogs(run); err != nil {
		return nil, err
	}

	r.reporter.RecordBatch(total, OptionLabel(prefix))
	logger.Info("batch.done", "renamed", run.Succeeded(), "failed", run.Failed(), "log", run.LogPath)
	return run, nil
}

// process renames a single file and converts any failure, panics included, into an
// error outcome.
func (r *Renamer) process(dir, prefix, name string, l Listener) (outcome Outcome) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("batch.file_panic", "file", name, "panic", p)
			status := errorStatusPrefix + fmt.Sprint(p)
			l.OnLog("  " + status)
			outcome = Outcome{Original: name, Status: status}
		}
	}()

	renamed, err := r.renameFile(dir, prefix, name, l)
	if err != nil {
		status := errorStatusPrefix + err.Error()
		l.OnLog("  " + status)
		return Outcome{Original: name, Status: status}
	}
	return Outcome{Original: name, New: renamed, Status: StatusSuccess}
}

func (r *Renamer) renameFile(dir, prefix, name string, l Listener) (string, error) {
	path := filepath.Join(dir, name)

	if r.preflight != nil {
		if err := r.preflight.Preflight(path); err != nil {
			return "", err
		}
	}

	text, err := r.source.FirstPageText(path)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrNoText
	}

	rec := fields.Extract(text)
	target, err := resolveTarget(dir, name, fields.Filename(prefix, rec), r.conflict)
	if err != nil {
		return "", err
	}

	l.OnLog("  Renaming to: " + target)
	if target == name {
		return target, nil
	}
	if err := os.Rename(path, filepath.Join(dir, target)); err != nil {
		return "", err
	}
	return target, nil
}

func (r *Renamer) writeLogs(run *BatchRun) error {
	rows := make([]report.Row, 0, len(run.Outcomes))
	for _, o := range run.Outcomes {
		rows = append(rows, report.Row{Original: o.Original, New: o.New, Status: o.Status})
	}

	logPath, err := report.LogPath(run.Directory, run.StartedAt)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(logPath, rows); err != nil {
		return err
	}
	run.LogPath = logPath

	if r.sheet {
		sheetPath := report.SpreadsheetPath(logPath)
		if err := report.WriteXLSX(sheetPath, rows); err != nil {
			return err
		}
		run.SpreadsheetPath = sheetPath
	}
	return nil
}

// ListPDFs returns the names of the regular entries of dir whose extension is .pdf in
// any letter case, in directory listing order.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// CountPDFs returns how many files a run over dir would process.
func CountPDFs(dir string) (int, error) {
	names, err := ListPDFs(dir)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// OptionLabel names the category of a prefix for reporting: the text before the first
// hyphen, or ORIGINAL for an empty prefix.
func OptionLabel(prefix string) string {
	if prefix == "" {
		return "ORIGINAL"
	}
	label, _, _ := strings.Cut(prefix, "-")
	return strings.TrimSpace(label)
}

func listenerOrNop(l Listener) Listener {
	if l == nil {
		return NopListener{}
	}
	return l
}
