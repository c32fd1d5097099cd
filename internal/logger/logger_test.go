package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{name: "defaults", opts: Options{}, wantLevel: zerolog.InfoLevel},
		{name: "debug json", opts: Options{Level: "debug", Format: FormatJSON}, wantLevel: zerolog.DebugLevel},
		{name: "warn console", opts: Options{Level: "warn", Format: FormatConsole}, wantLevel: zerolog.WarnLevel},
		{name: "bad level", opts: Options{Level: "loud"}, wantErr: true},
		{name: "bad format", opts: Options{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Out = &bytes.Buffer{}
			log, err := New(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if log.GetLevel() != tt.wantLevel {
				t.Errorf("expected level %v, got %v", tt.wantLevel, log.GetLevel())
			}
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Format: FormatJSON, Out: buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info().Str("file", "extrato.pdf").Msg("converted")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "converted" || entry["file"] != "extrato.pdf" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "error", Format: FormatJSON, Out: buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	l := FromContext(ctx)
	l.Info().Msg("test")

	if !strings.Contains(buf.String(), "test") {
		t.Errorf("expected log output from retrieved logger, got %q", buf.String())
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("expected disabled logger, got level %v", log.GetLevel())
	}
}
