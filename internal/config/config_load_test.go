package config

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// isolate points every directory at t's temp dir and clears the environment
// variables Load reads.
func isolate(t *testing.T) (string, []string) {
	t.Helper()
	for _, key := range []string{
		"MODE", "HOST", "PORT", "DIR", "SCRATCH_DIR", "OUTPUT_DIR", "BATCH_SIZE",
		"MAX_FILE_SIZE", "ARCHIVE_ENTRY", "LOG_LEVEL", "LOG_FORMAT", "SERVER_NAME",
	} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
	root := t.TempDir()
	return root, []string{
		"--dir=" + filepath.Join(root, "pdfs"),
		"--scratch-dir=" + filepath.Join(root, "temp_pdfs"),
	}
}

func TestLoad_Defaults(t *testing.T) {
	root, args := isolate(t)

	cfg, err := Load(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Mode != ModeServer {
		t.Errorf("Load() Mode = %v, want %v", cfg.Mode, ModeServer)
	}
	if cfg.Port != 8080 {
		t.Errorf("Load() Port = %v, want %v", cfg.Port, 8080)
	}
	if cfg.BatchSize != 100 {
		t.Errorf("Load() BatchSize = %v, want %v", cfg.BatchSize, 100)
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Load() MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	if want := filepath.Join(root, "temp_pdfs", "out"); cfg.OutputDirectory != want {
		t.Errorf("Load() OutputDirectory = %v, want %v", cfg.OutputDirectory, want)
	}
}

func TestLoad_Flags(t *testing.T) {
	_, args := isolate(t)
	args = append(args,
		"--mode=stdio",
		"--port=9000",
		"--batch-size=25",
		"--max-file-size=2048",
		"--archive-entry=registros.csv",
		"--log-level=debug",
		"--log-format=json",
		"--server-name=records-test",
	)

	cfg, err := Load(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	checks := []struct {
		field string
		got   any
		want  any
	}{
		{"Mode", cfg.Mode, ModeStdio},
		{"Port", cfg.Port, 9000},
		{"BatchSize", cfg.BatchSize, 25},
		{"MaxFileSize", cfg.MaxFileSize, int64(2048)},
		{"ArchiveEntryName", cfg.ArchiveEntryName, "registros.csv"},
		{"LogLevel", cfg.LogLevel, "debug"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"ServerName", cfg.ServerName, "records-test"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("Load() %s = %v, want %v", c.field, c.got, c.want)
		}
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	_, args := isolate(t)
	t.Setenv("PDF_RECORDS_HOST", "0.0.0.0")
	t.Setenv("PDF_RECORDS_PORT", "3000")
	t.Setenv("PDF_RECORDS_BATCH_SIZE", "7")
	t.Setenv("PDF_RECORDS_LOG_LEVEL", "warn")
	t.Setenv("PDF_RECORDS_MAX_FILE_SIZE", "200000000")

	cfg, err := Load(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Load() Host = %v, want 0.0.0.0", cfg.Host)
	}
	if cfg.Port != 3000 {
		t.Errorf("Load() Port = %v, want 3000", cfg.Port)
	}
	if cfg.BatchSize != 7 {
		t.Errorf("Load() BatchSize = %v, want 7", cfg.BatchSize)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 200000000 {
		t.Errorf("Load() MaxFileSize = %v, want 200000000", cfg.MaxFileSize)
	}
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	_, args := isolate(t)
	t.Setenv("PDF_RECORDS_PORT", "3000")
	t.Setenv("PDF_RECORDS_BATCH_SIZE", "7")

	cfg, err := Load(append(args, "--port=4000", "--batch-size=9"), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != 4000 {
		t.Errorf("Load() Port = %v, want 4000 (flag should override env)", cfg.Port)
	}
	if cfg.BatchSize != 9 {
		t.Errorf("Load() BatchSize = %v, want 9 (flag should override env)", cfg.BatchSize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid mode", args: []string{"--mode=invalid"}},
		{name: "invalid port", args: []string{"--port=70000"}},
		{name: "invalid batch size", args: []string{"--batch-size=0"}},
		{name: "invalid log level", args: []string{"--log-level=trace"}},
		{name: "unknown flag", args: []string{"--no-such-flag"}},
		{name: "non-numeric port", args: []string{"--port=http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args := isolate(t)
			if _, err := Load(append(args, tt.args...), &bytes.Buffer{}); err == nil {
				t.Errorf("Load(%v) expected error, got nil", tt.args)
			}
		})
	}
}

func TestLoad_VersionFlag(t *testing.T) {
	for _, flag := range []string{"--version", "-v"} {
		t.Run(flag, func(t *testing.T) {
			_, args := isolate(t)
			_, err := Load(append(args, flag), &bytes.Buffer{})
			if !errors.Is(err, ErrVersionRequested) {
				t.Errorf("Load(%s) error = %v, want ErrVersionRequested", flag, err)
			}
		})
	}
}

func TestLoad_Help(t *testing.T) {
	_, args := isolate(t)
	usage := &bytes.Buffer{}

	_, err := Load(append(args, "--help"), usage)
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("Load(--help) error = %v, want pflag.ErrHelp", err)
	}
	if !strings.Contains(usage.String(), "PDF_RECORDS_BATCH_SIZE") {
		t.Errorf("usage should list environment variables, got:\n%s", usage.String())
	}
}
