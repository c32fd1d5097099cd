// Package convert runs the record extraction pipeline: a document is read
// in page batches, every page's text is walked for statement lines and the
// resulting records are written to a table that is finally packaged.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/a3tai/pdf-records/internal/archive"
	"github.com/a3tai/pdf-records/internal/logger"
	"github.com/a3tai/pdf-records/internal/pdf"
	"github.com/a3tai/pdf-records/internal/pdf/wrapper"
	"github.com/a3tai/pdf-records/internal/records"
)

// Upload is a document received from a caller.
type Upload struct {
	Filename string
	Body     io.Reader
	// BatchSize of zero selects the service default.
	BatchSize int
}

// Result is a converted document.
type Result struct {
	Archive *archive.Archive
	Records int
	Pages   int
	Batches int
}

// Preview holds the first records of a document.
type Preview struct {
	Records   []records.Record
	Pages     int
	Truncated bool
}

// Options configures a Service.
type Options struct {
	Scratch   *pdf.Scratch
	Reader    *pdf.ChunkedReader
	Walker    *records.Walker
	Packager  *archive.Packager
	Validator *pdf.Validator
	BatchSize int
}

// Service converts PDF documents into record archives. A Service holds no
// per-request state and may be shared.
type Service struct {
	scratch   *pdf.Scratch
	reader    *pdf.ChunkedReader
	walker    *records.Walker
	packager  *archive.Packager
	validator *pdf.Validator
	batchSize int
}

// NewService creates a service. Scratch and Reader are required; the other
// options fall back to defaults.
func NewService(opts Options) *Service {
	s := &Service{
		scratch:   opts.Scratch,
		reader:    opts.Reader,
		walker:    opts.Walker,
		packager:  opts.Packager,
		validator: opts.Validator,
		batchSize: opts.BatchSize,
	}
	if s.walker == nil {
		s.walker = records.NewWalker(nil)
	}
	if s.packager == nil {
		s.packager = archive.NewPackager("")
	}
	if s.validator == nil {
		s.validator = pdf.NewValidator(0)
	}
	if s.batchSize < 1 {
		s.batchSize = pdf.DefaultBatchSize
	}
	return s
}

// BatchSize returns the default batch size.
func (s *Service) BatchSize() int {
	return s.batchSize
}

// ValidateFilename rejects names that do not carry a .pdf extension.
func (s *Service) ValidateFilename(name string) error {
	if name == "" {
		return newError(KindMissingInput, "no file was uploaded", nil)
	}
	if err := s.validator.ValidateName(name); err != nil {
		return Classify(err)
	}
	return nil
}

// Convert extracts the records of an uploaded document and packages them.
// Input is validated before any file is written. Everything written for the
// request is removed before Convert returns.
func (s *Service) Convert(ctx context.Context, up Upload) (*Result, error) {
	if up.Body == nil {
		return nil, newError(KindMissingInput, "no file was uploaded", nil)
	}
	if err := s.ValidateFilename(up.Filename); err != nil {
		return nil, err
	}
	batchSize, err := s.resolveBatchSize(up.BatchSize)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)

	area, err := s.scratch.NewArea()
	if err != nil {
		return nil, Classify(err)
	}
	defer s.closeArea(ctx, area)

	src, size, err := area.Save(filepath.Base(up.Filename), up.Body, s.validator.MaxFileSize())
	if err != nil {
		return nil, Classify(err)
	}
	if err := s.validator.ValidateSize(size); err != nil {
		return nil, Classify(err)
	}

	log.Info().
		Str("file", filepath.Base(up.Filename)).
		Int64("bytes", size).
		Int("batch_size", batchSize).
		Msg("Converting upload")

	return s.convertSource(ctx, area, src, batchSize)
}

// ConvertFile converts a document already on disk. Only batch files are
// written to the scratch area; the source is read in place.
func (s *Service) ConvertFile(ctx context.Context, path string, batchSize int) (*Result, error) {
	batchSize, err := s.resolveBatchSize(batchSize)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateFile(path); err != nil {
		return nil, Classify(err)
	}

	area, err := s.scratch.NewArea()
	if err != nil {
		return nil, Classify(err)
	}
	defer s.closeArea(ctx, area)

	return s.convertSource(ctx, area, path, batchSize)
}

// PreviewFile returns up to limit records from the start of a document
// without packaging anything. Reading stops once limit records are found.
func (s *Service) PreviewFile(ctx context.Context, path string, batchSize, limit int) (*Preview, error) {
	batchSize, err := s.resolveBatchSize(batchSize)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, newError(KindInvalidParameter, "limit must be a positive integer", nil)
	}
	if err := s.validator.ValidateFile(path); err != nil {
		return nil, Classify(err)
	}

	area, err := s.scratch.NewArea()
	if err != nil {
		return nil, Classify(err)
	}
	defer s.closeArea(ctx, area)

	preview := &Preview{}
	plan, err := s.extract(area, path, batchSize, func(rec records.Record) error {
		if len(preview.Records) == limit {
			preview.Truncated = true
			return errPreviewFull
		}
		preview.Records = append(preview.Records, rec)
		return nil
	})
	if err != nil && !errors.Is(err, errPreviewFull) {
		return nil, Classify(err)
	}
	preview.Pages = plan.Pages
	return preview, nil
}

var errPreviewFull = errors.New("preview limit reached")

func (s *Service) convertSource(ctx context.Context, area *pdf.Area, src string, batchSize int) (*Result, error) {
	log := logger.FromContext(ctx)

	sink, err := records.NewCSVSink()
	if err != nil {
		return nil, Classify(err)
	}
	plan, err := s.extract(area, src, batchSize, sink.Write)
	if err != nil {
		return nil, Classify(err)
	}

	table, err := sink.Bytes()
	if err != nil {
		return nil, Classify(fmt.Errorf("failed to encode records: %w", err))
	}

	arc, err := s.packager.Package(table)
	if err != nil {
		return nil, Classify(err)
	}

	log.Info().
		Int("pages", plan.Pages).
		Int("batches", len(plan.Batches)).
		Int("records", sink.Count()).
		Str("archive", arc.Name).
		Msg("Conversion finished")

	return &Result{
		Archive: arc,
		Records: sink.Count(),
		Pages:   plan.Pages,
		Batches: len(plan.Batches),
	}, nil
}

// extract feeds every record of src to emit in document order.
func (s *Service) extract(area *pdf.Area, src string, batchSize int, emit func(records.Record) error) (pdf.Plan, error) {
	return s.reader.Each(area, src, batchSize, func(_ pdf.Batch, pages wrapper.PageSource) error {
		return pdf.EachPage(pages, func(_ int, text string) error {
			for rec := range s.walker.Walk(text) {
				if err := emit(rec); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func (s *Service) resolveBatchSize(n int) (int, error) {
	if n == 0 {
		return s.batchSize, nil
	}
	if err := pdf.ValidateBatchSize(n); err != nil {
		return 0, Classify(err)
	}
	return n, nil
}

func (s *Service) closeArea(ctx context.Context, area *pdf.Area) {
	if err := area.Close(); err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("dir", area.Dir()).Msg("Failed to clean up working area")
	}
}
