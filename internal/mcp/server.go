package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/pdf-renamer/internal/config"
	"github.com/a3tai/pdf-renamer/internal/fields"
	"github.com/a3tai/pdf-renamer/internal/pdf/security"
	"github.com/a3tai/pdf-renamer/internal/renamer"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	source    renamer.TextSource
	batch     *renamer.Renamer
	paths     *security.PathValidator
	mcpServer *server.MCPServer
	logger    *slog.Logger

	// runs against one directory must not overlap
	runMu sync.Mutex
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, source renamer.TextSource, batch *renamer.Renamer, logger *slog.Logger) (*Server, error) {
	if source == nil {
		return nil, errors.New("text source cannot be nil")
	}
	if batch == nil {
		return nil, errors.New("renamer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := security.NewPathValidator(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		source:    source,
		batch:     batch,
		paths:     paths,
		mcpServer: mcpServer,
		logger:    logger,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFieldsTool := mcp.NewTool(
		"pdf_extract_fields",
		mcp.WithDescription("Read the title and number from the first page of a PDF and show the filename it would get"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, absolute or relative to the configured directory"),
		),
		mcp.WithString("category",
			mcp.Description("Category whose prefix is used for the proposed filename (defaults to the configured category)"),
		),
	)
	s.mcpServer.AddTool(extractFieldsTool, s.handleExtractFields)

	renameDirectoryTool := mcp.NewTool(
		"pdf_rename_directory",
		mcp.WithDescription("Rename every PDF in a directory to '<prefix><title> - <number>.pdf' and write a rename log"),
		mcp.WithString("directory",
			mcp.Description("Directory to process (uses the configured directory if empty)"),
		),
		mcp.WithString("category",
			mcp.Description("Original, NA Notice, Renegotiation or Post (defaults to the configured category)"),
		),
	)
	s.mcpServer.AddTool(renameDirectoryTool, s.handleRenameDirectory)

	listCategoriesTool := mcp.NewTool(
		"pdf_list_categories",
		mcp.WithDescription("List the PDF categories and the filename prefix each one adds"),
	)
	s.mcpServer.AddTool(listCategoriesTool, s.handleListCategories)
}

func (s *Server) handleExtractFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prefix, err := s.prefixFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.paths.Resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := s.source.FirstPageText(resolved)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if text == "" {
		return mcp.NewToolResultError(renamer.ErrNoText.Error()), nil
	}

	rec := fields.Extract(text)
	responseText := fmt.Sprintf("File: %s\n", resolved)
	responseText += fmt.Sprintf("Title: %s\n", rec.Title)
	responseText += fmt.Sprintf("Number: %s\n", rec.Number)
	responseText += fmt.Sprintf("Proposed filename: %s\n", fields.Filename(prefix, rec))

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRenameDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}
	directory, err := s.paths.ResolveDirectory(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prefix, err := s.prefixFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	collector := &logCollector{}
	run, err := s.batch.Run(directory, prefix, collector)
	if err != nil {
		return mcp.NewToolResultError(collector.errorMessage(err)), nil
	}

	return mcp.NewToolResultText(formatBatchRun(run, collector.lines)), nil
}

func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := "Categories:\n"
	for _, c := range config.Categories() {
		prefix := c.Prefix
		if prefix == "" {
			prefix = "(none)"
		} else {
			prefix = fmt.Sprintf("%q", prefix)
		}
		marker := ""
		if strings.EqualFold(c.Name, s.config.Category) {
			marker = " [default]"
		}
		text += fmt.Sprintf("- %s: prefix %s%s\n", c.Name, prefix, marker)
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) prefixFromArgs(args map[string]interface{}) (string, error) {
	category := s.config.Category
	if c, ok := args["category"].(string); ok && c != "" {
		category = c
	}
	return config.PrefixFor(category)
}

func formatBatchRun(run *renamer.BatchRun, lines []string) string {
	if len(run.Outcomes) == 0 {
		return fmt.Sprintf("No PDF files found in the selected folder: %s", run.Directory)
	}

	text := fmt.Sprintf("Processed %d PDF file(s) in directory: %s\n", len(run.Outcomes), run.Directory)
	text += fmt.Sprintf("Renamed: %d\n", run.Succeeded())
	text += fmt.Sprintf("Failed: %d\n", run.Failed())
	text += fmt.Sprintf("Log file: %s\n", run.LogPath)
	if run.SpreadsheetPath != "" {
		text += fmt.Sprintf("Spreadsheet: %s\n", run.SpreadsheetPath)
	}

	text += "\nResults:\n"
	for i, o := range run.Outcomes {
		if o.OK() {
			text += fmt.Sprintf("%d. %s -> %s\n", i+1, o.Original, o.New)
		} else {
			text += fmt.Sprintf("%d. %s: %s\n", i+1, o.Original, o.Status)
		}
	}

	if len(lines) > 0 {
		text += "\nLog:\n" + strings.Join(lines, "\n") + "\n"
	}
	return text
}

// logCollector keeps the log lines of a synchronous run for the tool result.
type logCollector struct {
	renamer.NopListener
	lines   []string
	failure string
}

func (c *logCollector) OnLog(line string) {
	c.lines = append(c.lines, line)
}

func (c *logCollector) OnError(message string) {
	c.failure = message
}

func (c *logCollector) errorMessage(err error) string {
	if c.failure != "" {
		return c.failure
	}
	return err.Error()
}

// Run serves the MCP tools over stdio until the client disconnects
func (s *Server) Run(_ context.Context) error {
	s.logger.Info("mcp.start", "server", s.config.ServerName, "directory", s.paths.Root())

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
