package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/a3tai/pdf-renamer/internal/config"
	"github.com/a3tai/pdf-renamer/internal/crashlog"
	"github.com/a3tai/pdf-renamer/internal/mcp"
	"github.com/a3tai/pdf-renamer/internal/pdf"
	"github.com/a3tai/pdf-renamer/internal/renamer"
	"github.com/a3tai/pdf-renamer/internal/telemetry"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newLogger builds the process logger. Output always goes to w (stderr in main) so
// stdout stays free for the MCP protocol in stdio mode.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRenamer wires the PDF collaborators, telemetry and conflict policy into a Renamer.
func newRenamer(cfg *config.Config, logger *slog.Logger) (*renamer.Renamer, *pdf.TextExtractor, error) {
	policy, err := renamer.ParseConflictPolicy(cfg.Conflict)
	if err != nil {
		return nil, nil, err
	}

	source := pdf.NewTextExtractor(cfg.MaxFileSize, logger)
	opts := renamer.Options{
		Conflict:    policy,
		Spreadsheet: cfg.Spreadsheet,
		Reporter:    telemetry.NewCounters(logger),
		Logger:      logger,
	}
	if cfg.Preflight {
		opts.Preflight = pdf.NewInspector(cfg.MaxFileSize)
	}

	return renamer.New(source, opts), source, nil
}

// exitListener logs like LogListener and remembers whether the batch failed.
type exitListener struct {
	*renamer.LogListener
	failed atomic.Bool
}

func (l *exitListener) OnError(message string) {
	l.failed.Store(true)
	l.LogListener.OnError(message)
}

// runRenameMode processes the configured directory once and returns the exit code.
func runRenameMode(ctx context.Context, cfg *config.Config, batch *renamer.Renamer, logger *slog.Logger) int {
	count, err := renamer.CountPDFs(cfg.Directory)
	if err != nil {
		logger.Error("Failed to read directory", "directory", cfg.Directory, "error", err)
		return 1
	}
	logger.Info("batch.confirm", "directory", cfg.Directory, "files", count, "category", cfg.Category)

	listener := &exitListener{LogListener: renamer.NewLogListener(logger)}
	done := batch.Start(cfg.Directory, cfg.Prefix(), listener)

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("Interrupt received, waiting for the current batch to finish")
		<-done
	}

	if listener.failed.Load() {
		return 1
	}
	return 0
}

// runStdioMode serves the MCP tools until the client disconnects.
func runStdioMode(ctx context.Context, cfg *config.Config, source renamer.TextSource, batch *renamer.Renamer,
	logger *slog.Logger,
) int {
	server, err := mcp.NewServer(cfg, source, batch, logger)
	if err != nil {
		logger.Error("Failed to create MCP server", "error", err)
		return 1
	}

	if err := server.Run(ctx); err != nil {
		logger.Error("Server error", "error", err)
		return 1
	}
	return 0
}

// run loads configuration and dispatches to the configured mode.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			crashlog.Handle(os.Stderr, r)
			code = 1
		}
	}()

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	if version != "dev" {
		cfg.Version = version
	}

	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	logger.Debug("Starting with configuration", "config", cfg.String())

	batch, source, err := newRenamer(cfg, logger)
	if err != nil {
		logger.Error("Failed to create renamer", "error", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.IsStdioMode() {
		return runStdioMode(ctx, cfg, source, batch, logger)
	}
	return runRenameMode(ctx, cfg, batch, logger)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if isVersionFlag(arg) {
			printVersion(os.Stdout)
			return
		}
	}

	os.Exit(run())
}

func isVersionFlag(arg string) bool {
	return arg == "-version" || arg == "--version" || arg == "-v"
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "PDF Renamer\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
