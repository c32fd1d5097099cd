package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/pdf-records/internal/config"
	"github.com/a3tai/pdf-records/internal/convert"
	"github.com/a3tai/pdf-records/internal/descriptions"
	"github.com/a3tai/pdf-records/internal/logger"
	"github.com/a3tai/pdf-records/internal/pdf"
	"github.com/a3tai/pdf-records/internal/pdf/security"
	"github.com/a3tai/pdf-records/internal/records"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Tool names.
const (
	ToolExtractRecords = descriptions.ToolExtractRecords
	ToolPreviewRecords = descriptions.ToolPreviewRecords
	ToolServerInfo     = descriptions.ToolServerInfo
)

// DefaultPreviewLimit is the number of rows returned by a preview when the
// caller does not ask for a limit.
const DefaultPreviewLimit = 20

// catalogLimit caps the directory listing in the server info reply.
const catalogLimit = 10

// ToolInfo summarises a registered tool for the server info reply.
type ToolInfo struct {
	Name        string
	Description string
	Parameters  string
}

var toolInfos = []ToolInfo{
	{
		Name:        ToolExtractRecords,
		Description: "Extract statement records from a PDF into a zipped CSV table",
		Parameters:  "path (required), batch_size (optional)",
	},
	{
		Name:        ToolPreviewRecords,
		Description: "Show the first statement records of a PDF without writing an archive",
		Parameters:  "path (required), batch_size (optional), limit (optional, default 20)",
	},
	{
		Name:        ToolServerInfo,
		Description: "Show server configuration and the PDFs available in the configured directory",
		Parameters:  "none",
	},
}

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *convert.Service
	guard     *security.PathValidator
	catalog   *pdf.Catalog
	log       zerolog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, svc *convert.Service, guard *security.PathValidator,
	catalog *pdf.Catalog, log zerolog.Logger,
) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("conversion service cannot be nil")
	}
	if guard == nil {
		return nil, fmt.Errorf("path validator cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		service:   svc,
		guard:     guard,
		catalog:   catalog,
		log:       log,
		mcpServer: mcpServer,
	}
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		ToolExtractRecords,
		mcp.WithDescription(descriptions.GetToolDescription(ToolExtractRecords)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, inside the configured directory"),
		),
		mcp.WithNumber("batch_size",
			mcp.Description("Pages per batch"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtractRecords)

	previewTool := mcp.NewTool(
		ToolPreviewRecords,
		mcp.WithDescription(descriptions.GetToolDescription(ToolPreviewRecords)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, inside the configured directory"),
		),
		mcp.WithNumber("batch_size",
			mcp.Description("Pages per batch"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return"),
		),
	)
	s.mcpServer.AddTool(previewTool, s.handlePreviewRecords)

	infoTool := mcp.NewTool(
		ToolServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(ToolServerInfo)),
	)
	s.mcpServer.AddTool(infoTool, s.handleServerInfo)
}

func (s *Server) handleExtractRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := s.resolvePath(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	batchSize, err := positiveInt(request, "batch_size", s.service.BatchSize())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx = logger.WithContext(ctx, s.log.With().Str("tool", ToolExtractRecords).Logger())
	result, err := s.service.ConvertFile(ctx, path, batchSize)
	if err != nil {
		return s.conversionError(ToolExtractRecords, path, err), nil
	}

	if err := os.MkdirAll(s.config.OutputDirectory, 0o750); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create output directory: %v", err)), nil
	}
	archivePath := filepath.Join(s.config.OutputDirectory, result.Archive.Name)
	if err := os.WriteFile(archivePath, result.Archive.Bytes(), 0o600); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write archive: %v", err)), nil
	}

	return mcp.NewToolResultText(s.formatExtractResult(path, archivePath, result)), nil
}

func (s *Server) handlePreviewRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := s.resolvePath(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	batchSize, err := positiveInt(request, "batch_size", s.service.BatchSize())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit, err := positiveInt(request, "limit", DefaultPreviewLimit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx = logger.WithContext(ctx, s.log.With().Str("tool", ToolPreviewRecords).Logger())
	preview, err := s.service.PreviewFile(ctx, path, batchSize, limit)
	if err != nil {
		return s.conversionError(ToolPreviewRecords, path, err), nil
	}

	return mcp.NewToolResultText(s.formatPreviewResult(path, preview)), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var files []pdf.FileInfo
	if s.catalog != nil {
		found, err := s.catalog.List(s.guard.Root(), 0)
		if err != nil {
			s.log.Warn().Err(err).Str("directory", s.guard.Root()).Msg("Failed to list PDF directory")
		}
		files = found
	}
	return mcp.NewToolResultText(s.formatServerInfo(files)), nil
}

// conversionError logs a failed conversion with its error kind and turns it
// into a tool error.
func (s *Server) conversionError(tool, path string, err error) *mcp.CallToolResult {
	s.log.Warn().Err(err).
		Str("tool", tool).
		Str("path", path).
		Str("code", convert.KindOf(err).String()).
		Msg("Conversion failed")
	return mcp.NewToolResultError(err.Error())
}

// resolvePath reads the path argument and confines it to the configured
// directory.
func (s *Server) resolvePath(request mcp.CallToolRequest) (string, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	return s.guard.Resolve(path)
}

// positiveInt reads an optional numeric argument. JSON numbers arrive as
// float64; strings are accepted for clients that quote everything.
func positiveInt(request mcp.CallToolRequest, name string, def int) (int, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return def, nil
	}

	var n int
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a positive integer", name)
		}
		n = int(v)
	case int:
		n = v
	case string:
		parsed, err := convert.ParseBatchSize(v, def)
		if err != nil {
			return 0, fmt.Errorf("%s must be a positive integer", name)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

func (s *Server) formatExtractResult(path, archivePath string, result *convert.Result) string {
	text := fmt.Sprintf("Extracted records from: %s\n", path)
	text += fmt.Sprintf("Records: %d\n", result.Records)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Batches: %d\n", result.Batches)
	text += fmt.Sprintf("Archive: %s (%d bytes)\n", archivePath, result.Archive.Size())
	if result.Records == 0 {
		text += "\nNo statement lines were recognised; the table only holds the header.\n"
	}
	return text
}

func (s *Server) formatPreviewResult(path string, preview *convert.Preview) string {
	text := fmt.Sprintf("Preview of: %s\n", path)
	text += fmt.Sprintf("Records shown: %d", len(preview.Records))
	if preview.Truncated {
		text += " (more available)"
	}
	text += "\n"
	if preview.Pages > 0 {
		text += fmt.Sprintf("Pages: %d\n", preview.Pages)
	}
	text += "\n" + strings.Join(records.Header, ";") + "\n"
	for _, rec := range preview.Records {
		text += strings.Join(rec.Row(), ";") + "\n"
	}
	return text
}

func (s *Server) formatServerInfo(files []pdf.FileInfo) string {
	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("PDF Directory: %s\n", s.guard.Root())
	text += fmt.Sprintf("Output Directory: %s\n", s.config.OutputDirectory)
	text += fmt.Sprintf("Scratch Directory: %s\n", s.config.ScratchDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("Default Batch Size: %d\n\n", s.service.BatchSize())

	if len(files) > 0 {
		text += fmt.Sprintf("Directory Contents (%d PDF files found):\n", len(files))
		for i, file := range files {
			if i >= catalogLimit {
				text += fmt.Sprintf("   ... and %d more files\n", len(files)-catalogLimit)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "Directory Contents: No PDF files found\n\n"
	}

	text += "Available Tools:\n"
	for _, tool := range toolInfos {
		text += fmt.Sprintf("\n- %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}
	return text
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run(_ context.Context) error {
	s.log.Debug().
		Str("directory", s.guard.Root()).
		Str("output", s.config.OutputDirectory).
		Msg("Starting MCP server in stdio mode")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
