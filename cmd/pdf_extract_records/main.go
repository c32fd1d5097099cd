package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/pdf-records/internal/archive"
	"github.com/a3tai/pdf-records/internal/convert"
	"github.com/a3tai/pdf-records/internal/logger"
	"github.com/a3tai/pdf-records/internal/pdf"
	"github.com/a3tai/pdf-records/internal/records"
	"github.com/spf13/pflag"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatZip  = "zip"
)

// options holds the parsed command line.
type options struct {
	batchSize  int
	format     string
	outputDir  string
	scratchDir string
	limit      int
	verbose    bool
	path       string
}

// ExtractionResult is the JSON document printed by --format json.
type ExtractionResult struct {
	FilePath  string           `json:"file_path"`
	Pages     int              `json:"pages"`
	Count     int              `json:"count"`
	Truncated bool             `json:"truncated,omitempty"`
	Records   []records.Record `json:"records"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr)
		return 1
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Out: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	scratchDir := opts.scratchDir
	if scratchDir == "" {
		dir, err := os.MkdirTemp("", "pdf_records_")
		if err != nil {
			fmt.Fprintf(stderr, "Error creating scratch directory: %v\n", err)
			return 1
		}
		defer os.RemoveAll(dir)
		scratchDir = dir
	}
	scratch, err := pdf.NewScratch(scratchDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	svc := convert.NewService(convert.Options{
		Scratch:   scratch,
		Reader:    pdf.NewDefaultChunkedReader(log),
		BatchSize: opts.batchSize,
	})
	ctx := logger.WithContext(context.Background(), log)

	if opts.format == formatZip {
		err = writeArchive(ctx, svc, opts, stdout)
	} else {
		err = printRecords(ctx, svc, opts, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error extracting records: %v\n", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet("pdf_extract_records", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.IntVarP(&opts.batchSize, "batch-size", "b", pdf.DefaultBatchSize, "Pages per batch")
	flags.StringVarP(&opts.format, "format", "f", formatText, "Output format: text, json, zip")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", ".", "Directory for the archive when --format zip")
	flags.StringVar(&opts.scratchDir, "scratch-dir", "", "Scratch directory (a temporary one by default)")
	flags.IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of records to print; 0 prints all")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	flags.Usage = func() { printHelp(stderr, flags) }

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	switch opts.format {
	case formatText, formatJSON, formatZip:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", opts.format)
	}
	if opts.limit < 0 {
		return nil, fmt.Errorf("limit cannot be negative")
	}
	if flags.NArg() != 1 {
		return nil, fmt.Errorf("exactly one PDF file path required")
	}
	opts.path = flags.Arg(0)
	return opts, nil
}

// writeArchive converts the document and writes the zip into the output
// directory.
func writeArchive(ctx context.Context, svc *convert.Service, opts *options, stdout io.Writer) error {
	result, err := svc.ConvertFile(ctx, opts.path, opts.batchSize)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	target := filepath.Join(opts.outputDir, result.Archive.Name)
	if err := os.WriteFile(target, result.Archive.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	fmt.Fprintf(stdout, "Extracted %d records from %d pages in %d batches\n",
		result.Records, result.Pages, result.Batches)
	fmt.Fprintf(stdout, "Archive: %s (%s)\n", target, archive.ContentType)
	return nil
}

// printRecords prints the records of the document without packaging them.
func printRecords(ctx context.Context, svc *convert.Service, opts *options, stdout io.Writer) error {
	limit := opts.limit
	if limit == 0 {
		limit = math.MaxInt32
	}
	preview, err := svc.PreviewFile(ctx, opts.path, opts.batchSize, limit)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(opts.path)
	if err != nil {
		absPath = opts.path
	}

	if opts.format == formatJSON {
		result := ExtractionResult{
			FilePath:  absPath,
			Pages:     preview.Pages,
			Count:     len(preview.Records),
			Truncated: preview.Truncated,
			Records:   preview.Records,
		}
		if result.Records == nil {
			result.Records = []records.Record{}
		}
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	if len(preview.Records) == 0 {
		fmt.Fprintln(stdout, "No statement lines found in the PDF")
		return nil
	}
	fmt.Fprintln(stdout, strings.Join(records.Header, ";"))
	for _, rec := range preview.Records {
		fmt.Fprintln(stdout, strings.Join(rec.Row(), ";"))
	}
	if preview.Truncated {
		fmt.Fprintf(stdout, "... output limited to %d records\n", len(preview.Records))
	}
	return nil
}

func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "PDF Extract Records - Extract statement records from a PDF document")
	fmt.Fprintln(w)
	printUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprint(w, flags.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  pdf_extract_records extrato.pdf")
	fmt.Fprintln(w, "  pdf_extract_records -f json -n 10 extrato.pdf")
	fmt.Fprintln(w, "  pdf_extract_records -f zip -o out/ -b 50 extrato.pdf")
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  pdf_extract_records [OPTIONS] <pdf_file>")
}
