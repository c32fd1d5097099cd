package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Log formats
	LogFormatConsole = "console"
	LogFormatJSON    = "json"

	// Default values
	DefaultPort             = 8080
	DefaultHost             = "127.0.0.1"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = LogFormatConsole
	DefaultMaxFileSize      = 100 * 1024 * 1024 // 100MB
	DefaultBatchSize        = 100
	DefaultScratchDirectory = "./temp_pdfs"
	DefaultArchiveEntryName = "all_parts.csv"
	DefaultServerName       = "pdf-records"

	// EnvPrefix is prepended to every environment variable
	EnvPrefix = "PDF_RECORDS"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// ErrVersionRequested is returned by Load when --version was passed.
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the record converter
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Directories
	ScratchDirectory string // per-request working areas live here
	PDFDirectory     string // root for documents named by MCP tools
	OutputDirectory  string // archives produced by MCP tools

	// Conversion
	BatchSize        int
	MaxFileSize      int64 // Maximum PDF file size in bytes
	ArchiveEntryName string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	LogFormat  string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:             ModeServer,
		Host:             DefaultHost,
		Port:             DefaultPort,
		ScratchDirectory: DefaultScratchDirectory,
		PDFDirectory:     currentDir,
		BatchSize:        DefaultBatchSize,
		MaxFileSize:      DefaultMaxFileSize,
		ArchiveEntryName: DefaultArchiveEntryName,
		Version:          "1.0.0",
		ServerName:       DefaultServerName,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// LoadFromFlags loads configuration from the process arguments and
// environment.
func LoadFromFlags() (*Config, error) {
	return Load(os.Args[1:], os.Stderr)
}

// Load builds a configuration from args and PDF_RECORDS_* environment
// variables. Flags take precedence over the environment. Usage is written to
// usage when parsing fails or --help is given.
func Load(args []string, usage io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setupViperEnvironment(v, cfg)

	flags := pflag.NewFlagSet(DefaultServerName, pflag.ContinueOnError)
	flags.SetOutput(usage)
	defineCommandLineFlags(flags, cfg)
	setupUsageMessage(flags, usage)

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if ok, _ := flags.GetBool("version"); ok {
		return nil, ErrVersionRequested
	}

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	populateConfigFromViper(v, cfg)
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("dir", cfg.PDFDirectory)
	v.SetDefault("scratch-dir", cfg.ScratchDirectory)
	v.SetDefault("output-dir", cfg.OutputDirectory)
	v.SetDefault("batch-size", cfg.BatchSize)
	v.SetDefault("max-file-size", cfg.MaxFileSize)
	v.SetDefault("archive-entry", cfg.ArchiveEntryName)
	v.SetDefault("log-level", cfg.LogLevel)
	v.SetDefault("log-format", cfg.LogFormat)
	v.SetDefault("server-name", cfg.ServerName)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.String("mode", cfg.Mode, "Run mode: 'server' for the HTTP converter, 'stdio' for MCP standard I/O")
	flags.String("host", cfg.Host, "Server host address (server mode only)")
	flags.Int("port", cfg.Port, "Server port (server mode only)")
	flags.String("dir", cfg.PDFDirectory, "Directory MCP tools may read PDF files from")
	flags.String("scratch-dir", cfg.ScratchDirectory, "Directory for per-request temporary files")
	flags.String("output-dir", cfg.OutputDirectory, "Directory MCP tools write archives to (default <scratch-dir>/out)")
	flags.Int("batch-size", cfg.BatchSize, "Default number of pages read per batch")
	flags.Int64("max-file-size", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	flags.String("archive-entry", cfg.ArchiveEntryName, "Name of the table inside produced archives")
	flags.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", cfg.LogFormat, "Log format (console, json)")
	flags.String("server-name", cfg.ServerName, "Name reported by the MCP server")
	flags.BoolP("version", "v", false, "Print version information and exit")
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage(flags *pflag.FlagSet, w io.Writer) {
	flags.Usage = func() {
		fmt.Fprintf(w, "Usage of %s:\n", DefaultServerName)
		fmt.Fprintf(w, "\nPDF Records - extracts process records from PDF statements into zipped tables\n\n")
		fmt.Fprintf(w, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  %s                                   # HTTP server on 127.0.0.1:8080 (default)\n", DefaultServerName)
		fmt.Fprintf(w, "  %s --host=0.0.0.0 --batch-size=50    # server on all interfaces\n", DefaultServerName)
		fmt.Fprintf(w, "  %s --mode=stdio --dir=/path/to/pdfs  # MCP over stdio\n", DefaultServerName)
		fmt.Fprintf(w, "\nEnvironment Variables:\n")
		fmt.Fprintf(w, "  %s_MODE, %s_HOST, %s_PORT, %s_DIR, %s_SCRATCH_DIR,\n",
			EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
		fmt.Fprintf(w, "  %s_OUTPUT_DIR, %s_BATCH_SIZE, %s_MAX_FILE_SIZE,\n", EnvPrefix, EnvPrefix, EnvPrefix)
		fmt.Fprintf(w, "  %s_ARCHIVE_ENTRY, %s_LOG_LEVEL, %s_LOG_FORMAT, %s_SERVER_NAME\n",
			EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.Mode = v.GetString("mode")
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")
	cfg.PDFDirectory = v.GetString("dir")
	cfg.ScratchDirectory = v.GetString("scratch-dir")
	cfg.OutputDirectory = v.GetString("output-dir")
	cfg.BatchSize = v.GetInt("batch-size")
	cfg.MaxFileSize = v.GetInt64("max-file-size")
	cfg.ArchiveEntryName = v.GetString("archive-entry")
	cfg.LogLevel = v.GetString("log-level")
	cfg.LogFormat = v.GetString("log-format")
	cfg.ServerName = v.GetString("server-name")
}

// expandPaths makes directories absolute and fills in the output directory.
func (c *Config) expandPaths() {
	for _, dir := range []*string{&c.PDFDirectory, &c.ScratchDirectory, &c.OutputDirectory} {
		if *dir == "" {
			continue
		}
		if abs, err := filepath.Abs(*dir); err == nil {
			*dir = abs
		}
	}
	if c.OutputDirectory == "" && c.ScratchDirectory != "" {
		c.OutputDirectory = filepath.Join(c.ScratchDirectory, "out")
	}
}

// Validate checks the configuration and creates missing directories.
// Running it again on the same configuration is harmless.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.BatchSize < 1 {
		return errors.New("batch size must be a positive integer")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.ArchiveEntryName == "" || strings.ContainsAny(c.ArchiveEntryName, `/\`) {
		return fmt.Errorf("invalid archive entry name: %q", c.ArchiveEntryName)
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

	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("invalid log format: %s (must be one of: console, json)", c.LogFormat)
	}

	if c.ScratchDirectory == "" {
		return errors.New("scratch directory cannot be empty")
	}
	if err := ensureDir("scratch", c.ScratchDirectory); err != nil {
		return err
	}

	if c.PDFDirectory == "" {
		return errors.New("PDF directory cannot be empty")
	}
	if err := ensureDir("PDF", c.PDFDirectory); err != nil {
		return err
	}

	if c.OutputDirectory != "" {
		if err := ensureDir("output", c.OutputDirectory); err != nil {
			return err
		}
	}

	return nil
}

// ensureDir creates dir when it does not exist yet.
func ensureDir(label, dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create %s directory %s: %w", label, dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access %s directory %s: %w", label, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s directory %s is not a directory", label, dir)
	}
	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, ScratchDirectory: %s, PDFDirectory: %s, "+
		"OutputDirectory: %s, BatchSize: %d, MaxFileSize: %d, LogLevel: %s, LogFormat: %s}",
		c.Mode, c.Host, c.Port, c.ScratchDirectory, c.PDFDirectory,
		c.OutputDirectory, c.BatchSize, c.MaxFileSize, c.LogLevel, c.LogFormat)
}

// IsServerMode returns true if the converter runs as an HTTP server
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the converter runs as an MCP stdio server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
