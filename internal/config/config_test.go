package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validConfig returns a configuration whose directories live under t's
// temporary directory.
func validConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.ScratchDirectory = filepath.Join(root, "temp_pdfs")
	cfg.PDFDirectory = filepath.Join(root, "pdfs")
	cfg.OutputDirectory = filepath.Join(root, "out")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeServer {
		t.Errorf("Expected default mode to be 'server', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.BatchSize != 100 {
		t.Errorf("Expected default batch size to be 100, got %d", cfg.BatchSize)
	}

	if cfg.ScratchDirectory != "./temp_pdfs" {
		t.Errorf("Expected default scratch directory to be './temp_pdfs', got '%s'", cfg.ScratchDirectory)
	}

	if cfg.ArchiveEntryName != "all_parts.csv" {
		t.Errorf("Expected default archive entry to be 'all_parts.csv', got '%s'", cfg.ArchiveEntryName)
	}

	if cfg.ServerName != "pdf-records" {
		t.Errorf("Expected default server name to be 'pdf-records', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("Expected default logging info/console, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	currentDir, _ := os.Getwd()
	if cfg.PDFDirectory != currentDir {
		t.Errorf("Expected default PDF directory to be '%s', got '%s'", currentDir, cfg.PDFDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid server config", mutate: func(*Config) {}},
		{name: "valid stdio config", mutate: func(c *Config) { c.Mode = ModeStdio; c.Port = 0 }},
		{name: "valid json logs", mutate: func(c *Config) { c.LogFormat = LogFormatJSON }},
		{name: "invalid mode", mutate: func(c *Config) { c.Mode = "invalid" }, wantErr: "mode"},
		{name: "port too low", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port"},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port"},
		{name: "zero batch size", mutate: func(c *Config) { c.BatchSize = 0 }, wantErr: "batch size"},
		{name: "negative max file size", mutate: func(c *Config) { c.MaxFileSize = -1 }, wantErr: "file size"},
		{name: "empty archive entry", mutate: func(c *Config) { c.ArchiveEntryName = "" }, wantErr: "archive entry"},
		{name: "archive entry with path", mutate: func(c *Config) { c.ArchiveEntryName = "../x.csv" }, wantErr: "archive entry"},
		{name: "invalid log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "log level"},
		{name: "invalid log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log format"},
		{name: "empty scratch directory", mutate: func(c *Config) { c.ScratchDirectory = "" }, wantErr: "scratch"},
		{name: "empty PDF directory", mutate: func(c *Config) { c.PDFDirectory = "" }, wantErr: "PDF directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Config.Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Config.Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Config.Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesDirectories(t *testing.T) {
	cfg := validConfig(t)
	cfg.ScratchDirectory = filepath.Join(cfg.ScratchDirectory, "nested", "deeper")

	for i := 0; i < 2; i++ {
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Config.Validate() run %d unexpected error: %v", i+1, err)
		}
	}

	for _, dir := range []string{cfg.ScratchDirectory, cfg.PDFDirectory, cfg.OutputDirectory} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected directory %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestConfigValidateRejectsFileAsDirectory(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	cfg.ScratchDirectory = file

	if err := cfg.Validate(); err == nil {
		t.Error("Config.Validate() expected error for a file used as scratch directory")
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{
		Host: "192.168.1.1",
		Port: 9090,
	}

	expected := "192.168.1.1:9090"
	if got := cfg.Address(); got != expected {
		t.Errorf("Config.Address() = %v, want %v", got, expected)
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		logLevel string
		want     bool
	}{
		{logLevel: "debug", want: true},
		{logLevel: "info", want: false},
		{logLevel: "warn", want: false},
		{logLevel: "error", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:             "server",
		Host:             "localhost",
		Port:             8080,
		ScratchDirectory: "/srv/temp_pdfs",
		PDFDirectory:     "/home/user/pdfs",
		BatchSize:        50,
		LogLevel:         "debug",
		MaxFileSize:      1024,
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"Mode: server",
		"Host: localhost",
		"Port: 8080",
		"ScratchDirectory: /srv/temp_pdfs",
		"PDFDirectory: /home/user/pdfs",
		"BatchSize: 50",
		"LogLevel: debug",
		"MaxFileSize: 1024",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}

func TestConfigModes(t *testing.T) {
	server := &Config{Mode: ModeServer}
	stdio := &Config{Mode: ModeStdio}

	if !server.IsServerMode() || server.IsStdioMode() {
		t.Error("server config should report server mode only")
	}
	if !stdio.IsStdioMode() || stdio.IsServerMode() {
		t.Error("stdio config should report stdio mode only")
	}
}
