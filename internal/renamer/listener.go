package renamer

import "log/slog"

// Listener receives notifications from a batch run. Methods are called synchronously
// from the goroutine executing the run; implementations that hand events to another
// goroutine must do their own synchronization.
type Listener interface {
	OnProgress(current, total int)
	OnLog(line string)
	OnFileResult(original, renamed, status string)
	// OnComplete receives the rename log path, or "" when there was nothing to do.
	OnComplete(logPath string)
	OnError(message string)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnProgress(int, int) {}
func (NopListener) OnLog(string) {}
func (NopListener) OnFileResult(string, string, string) {}
func (NopListener) OnComplete(string) {}
func (NopListener) OnError(string) {}

// LogListener writes notifications to a structured logger.
type LogListener struct {
	Logger *slog.Logger
}

// NewLogListener creates a listener logging to logger, or to the default logger when nil.
func NewLogListener(logger *slog.Logger) *LogListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogListener{Logger: logger}
}

func (l *LogListener) OnProgress(current, total int) {
	l.Logger.Info("batch.progress", "current", current, "total", total)
}

func (l *LogListener) OnLog(line string) {
	l.Logger.Info(line)
}

func (l *LogListener) OnFileResult(original, renamed, status string) {
	if status == StatusSuccess {
		l.Logger.Debug("batch.file", "original", original, "new", renamed, "status", status)
		return
	}
	l.Logger.Warn("batch.file", "original", original, "status", status)
}

func (l *LogListener) OnComplete(logPath string) {
	if logPath == "" {
		l.Logger.Info("batch.complete", "log", "none")
		return
	}
	l.Logger.Info("batch.complete", "log", logPath)
}

func (l *LogListener) OnError(message string) {
	l.Logger.Error("batch.error", "error", message)
}
