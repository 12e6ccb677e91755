package telemetry

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounters_RecordBatch(t *testing.T) {
	c := NewCounters(nil)
	c.RecordBatch(3, "ORIGINAL")
	c.RecordBatch(2, "NA")
	c.RecordBatch(4, "NA")

	snap := c.Snapshot()
	assert.Equal(t, int64(9), snap.PDFsRenamed)
	assert.Equal(t, map[string]int64{"ORIGINAL": 3, "NA": 6}, snap.Options)
}

func TestCounters_SnapshotIsCopy(t *testing.T) {
	c := NewCounters(nil)
	c.RecordBatch(1, "POST")

	snap := c.Snapshot()
	snap.Options["POST"] = 100

	assert.Equal(t, int64(1), c.Snapshot().Options["POST"])
}

func TestCounters_Concurrent(t *testing.T) {
	c := NewCounters(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordBatch(2, "RENEG")
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), c.Snapshot().PDFsRenamed)
}

func TestCounters_Logs(t *testing.T) {
	var buf bytes.Buffer
	c := NewCounters(slog.New(slog.NewTextHandler(&buf, nil)))
	c.RecordBatch(5, "NA")

	out := buf.String()
	assert.Contains(t, out, "telemetry.batch")
	assert.Contains(t, out, "pdfs_renamed=5")
	assert.Contains(t, out, "option=NA")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.RecordBatch(10, "NA") })
}
