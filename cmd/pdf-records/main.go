package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/a3tai/pdf-records/internal/api"
	"github.com/a3tai/pdf-records/internal/archive"
	"github.com/a3tai/pdf-records/internal/config"
	"github.com/a3tai/pdf-records/internal/convert"
	"github.com/a3tai/pdf-records/internal/logger"
	"github.com/a3tai/pdf-records/internal/mcp"
	"github.com/a3tai/pdf-records/internal/pdf"
	"github.com/a3tai/pdf-records/internal/pdf/security"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// app holds the wired components shared by both run modes.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	service   *convert.Service
	validator *pdf.Validator
}

// newApp wires the conversion pipeline from cfg.
func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	scratch, err := pdf.NewScratch(cfg.ScratchDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare scratch directory: %w", err)
	}

	validator := pdf.NewValidator(cfg.MaxFileSize)
	service := convert.NewService(convert.Options{
		Scratch:   scratch,
		Reader:    pdf.NewDefaultChunkedReader(log),
		Packager:  archive.NewPackager(cfg.ArchiveEntryName),
		Validator: validator,
		BatchSize: cfg.BatchSize,
	})

	return &app{cfg: cfg, log: log, service: service, validator: validator}, nil
}

// runServerMode serves the HTTP converter until ctx is cancelled.
func (a *app) runServerMode(ctx context.Context) error {
	handler := api.NewHandler(a.service, a.cfg.MaxFileSize, a.cfg.Version)
	srv := api.NewServer(a.cfg.Address(), handler, a.log)
	return api.Serve(ctx, srv, a.log)
}

// mcpServer builds the MCP server confined to the configured PDF directory.
func (a *app) mcpServer() (*mcp.Server, error) {
	guard, err := security.NewPathValidator(a.cfg.PDFDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to confine PDF directory: %w", err)
	}
	return mcp.NewServer(a.cfg, a.service, guard, pdf.NewCatalog(a.validator), a.log)
}

// runStdioMode serves MCP over stdio. The parent process controls the
// lifecycle; the call returns when stdin closes.
func (a *app) runStdioMode(ctx context.Context) error {
	server, err := a.mcpServer()
	if err != nil {
		return err
	}
	return server.Run(ctx)
}

func main() {
	cfg, err := config.LoadFromFlags()
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		printVersion(os.Stdout)
		return
	case errors.Is(err, pflag.ErrHelp):
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	if version != "dev" {
		cfg.Version = version
	}

	// Logs always go to stderr; stdout carries the MCP protocol in stdio mode.
	log, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(2)
	}
	log.Debug().Str("config", cfg.String()).Msg("Starting with configuration")

	a, err := newApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IsServerMode() {
		err = a.runServerMode(ctx)
	} else {
		err = a.runStdioMode(ctx)
	}
	if err != nil {
		log.Error().Err(err).Str("mode", cfg.Mode).Msg("Server stopped with error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "PDF Records\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
