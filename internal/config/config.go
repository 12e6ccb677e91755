package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/pdf-renamer/internal/renamer"
)

const (
	// Mode constants
	ModeRename = "rename"
	ModeStdio  = "stdio"

	// Default values
	DefaultCategory    = "Original"
	DefaultConflict    = string(renamer.ConflictFail)
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	envPrefix = "PDF_RENAMER"
)

// Category is a document type offered to the operator and the prefix it adds.
type Category struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

var categories = []Category{
	{Name: "Original", Prefix: ""},
	{Name: "NA Notice", Prefix: "NA - "},
	{Name: "Renegotiation", Prefix: "RENEG - "},
	{Name: "Post", Prefix: "POST - "},
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// PrefixFor returns the filename prefix of the named category, ignoring case.
func PrefixFor(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.Prefix, nil
		}
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return "", fmt.Errorf("unknown category %q (must be one of: %s)", name, strings.Join(names, ", "))
}

// Config holds all configuration for the PDF renamer
type Config struct {
	// Run configuration
	Mode      string // "rename" or "stdio"
	Directory string
	Category  string
	Conflict  string

	// Output configuration
	Spreadsheet bool

	// PDF configuration
	Preflight   bool
	MaxFileSize int64 // Maximum PDF file size in bytes

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:        ModeRename,
		Directory:   currentDir,
		Category:    DefaultCategory,
		Conflict:    DefaultConflict,
		MaxFileSize: DefaultMaxFileSize,
		Version:     "2.4.0",
		ServerName:  "pdf-renamer",
		LogLevel:    DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.Directory != "" {
		if expandedPath, err := filepath.Abs(cfg.Directory); err == nil {
			cfg.Directory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.Directory)
	viper.SetDefault("category", cfg.Category)
	viper.SetDefault("conflict", cfg.Conflict)
	viper.SetDefault("xlsx", cfg.Spreadsheet)
	viper.SetDefault("preflight", cfg.Preflight)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'rename' processes the directory once, 'stdio' serves MCP tools")
	pflag.String("dir", cfg.Directory, "Directory containing PDF files")
	pflag.String("category", cfg.Category, "PDF category: Original, NA Notice, Renegotiation, Post")
	pflag.String("conflict", cfg.Conflict, "When the new name is taken: fail, suffix, overwrite")
	pflag.Bool("xlsx", cfg.Spreadsheet, "Also write the rename log as an .xlsx spreadsheet")
	pflag.Bool("preflight", cfg.Preflight, "Check document structure with pdfcpu before extracting text")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{"mode", "dir", "category", "conflict", "xlsx", "preflight", "loglevel", "maxfilesize"} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPDF Renamer - renames PDFs after the title and number on their first page\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs                        # rename, no prefix\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs --category=\"NA Notice\" # prefix \"NA - \"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --dir=/path/to/pdfs           # MCP server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_DIR         PDF directory\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_CATEGORY    PDF category\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_CONFLICT    Conflict policy\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_XLSX        Write spreadsheet log\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_PREFLIGHT   Enable pdfcpu preflight\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  PDF_RENAMER_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Directory = viper.GetString("dir")
	cfg.Category = viper.GetString("category")
	cfg.Conflict = strings.ToLower(strings.TrimSpace(viper.GetString("conflict")))
	cfg.Spreadsheet = viper.GetBool("xlsx")
	cfg.Preflight = viper.GetBool("preflight")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeRename && c.Mode != ModeStdio {
		return errors.New("mode must be either 'rename' or 'stdio'")
	}

	if c.Directory == "" {
		return errors.New("PDF directory cannot be empty")
	}
	info, err := os.Stat(c.Directory)
	if err != nil {
		return fmt.Errorf("cannot access PDF directory %s: %w", c.Directory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("PDF directory %s is not a directory", c.Directory)
	}

	if _, err := PrefixFor(c.Category); err != nil {
		return err
	}

	if _, err := renamer.ParseConflictPolicy(c.Conflict); err != nil {
		return fmt.Errorf("invalid conflict policy: %w", err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Prefix returns the filename prefix of the configured category
func (c *Config) Prefix() string {
	prefix, _ := PrefixFor(c.Category)
	return prefix
}

// ConflictPolicy returns the configured rename-collision policy
func (c *Config) ConflictPolicy() renamer.ConflictPolicy {
	policy, err := renamer.ParseConflictPolicy(c.Conflict)
	if err != nil {
		return renamer.ConflictFail
	}
	return policy
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsStdioMode returns true if the MCP server should run over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Directory: %s, Category: %s, Conflict: %s, Spreadsheet: %t, "+
		"Preflight: %t, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Directory, c.Category, c.Conflict, c.Spreadsheet, c.Preflight, c.LogLevel, c.MaxFileSize)
}
