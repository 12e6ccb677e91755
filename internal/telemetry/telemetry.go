// Package telemetry counts renamed files per batch. It is injected into the renamer;
// nothing here is process-global.
package telemetry

import (
	"log/slog"
	"sync"
)

const (
	// MetricPDFsRenamed totals the files processed by completed batches.
	MetricPDFsRenamed = "pdfs_renamed"
	// MetricRenameOption totals processed files per category option.
	MetricRenameOption = "rename_option"
)

// Nop discards every batch.
type Nop struct{}

// RecordBatch does nothing.
func (Nop) RecordBatch(int, string) {}

// Snapshot is a copy of the counter values.
type Snapshot struct {
	PDFsRenamed int64            `json:"pdfs_renamed"`
	Options     map[string]int64 `json:"rename_option"`
}

// Counters keeps running totals in memory and logs each batch.
type Counters struct {
	mu      sync.Mutex
	renamed int64
	options map[string]int64
	logger  *slog.Logger
}

// NewCounters creates empty counters. A nil logger disables batch logging.
func NewCounters(logger *slog.Logger) *Counters {
	return &Counters{
		options: make(map[string]int64),
		logger:  logger,
	}
}

// RecordBatch adds total to pdfs_renamed and to rename_option{option}.
func (c *Counters) RecordBatch(total int, option string) {
	c.mu.Lock()
	c.renamed += int64(total)
	c.options[option] += int64(total)
	renamed := c.renamed
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("telemetry.batch",
			MetricPDFsRenamed, total,
			"option", option,
			"total_"+MetricPDFsRenamed, renamed,
		)
	}
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	options := make(map[string]int64, len(c.options))
	for k, v := range c.options {
		options[k] = v
	}
	return Snapshot{PDFsRenamed: c.renamed, Options: options}
}
