package pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/pdf-records/internal/pdf/wrapper"
	"github.com/rs/zerolog"
)

// DefaultBatchSize is the number of pages read per batch when none is given.
const DefaultBatchSize = 100

// Batch is a contiguous page range of a document. Pages are 1-based and
// inclusive.
type Batch struct {
	Index     int `json:"index"`
	FirstPage int `json:"first_page"`
	LastPage  int `json:"last_page"`
}

// Size returns the number of pages in the batch.
func (b Batch) Size() int {
	return b.LastPage - b.FirstPage + 1
}

// Plan describes how a document was divided.
type Plan struct {
	Pages   int     `json:"pages"`
	Batches []Batch `json:"batches"`
}

// ValidateBatchSize rejects sizes below one.
func ValidateBatchSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}
	return nil
}

// PlanBatches divides pageCount pages into consecutive batches of batchSize
// pages. Every batch but the last is full.
func PlanBatches(pageCount, batchSize int) ([]Batch, error) {
	if err := ValidateBatchSize(batchSize); err != nil {
		return nil, err
	}
	if pageCount < 0 {
		return nil, fmt.Errorf("invalid page count: %d", pageCount)
	}

	batches := make([]Batch, 0, (pageCount+batchSize-1)/batchSize)
	for first := 1; first <= pageCount; first += batchSize {
		batches = append(batches, Batch{
			Index:     len(batches),
			FirstPage: first,
			LastPage:  min(first+batchSize-1, pageCount),
		})
	}
	return batches, nil
}

// BatchFunc receives one batch with its pages opened for text extraction.
// The page source is closed after the function returns.
type BatchFunc func(b Batch, pages wrapper.PageSource) error

// ChunkedReader reads a document batch by batch. Each batch is written out
// as a standalone document in the caller's working area, read, and removed
// before the next one is produced, so at most one batch file exists at a
// time.
type ChunkedReader struct {
	splitter wrapper.Splitter
	opener   wrapper.PageOpener
	logger   zerolog.Logger
}

// NewChunkedReader creates a reader that splits with splitter and extracts
// text with opener.
func NewChunkedReader(splitter wrapper.Splitter, opener wrapper.PageOpener, logger zerolog.Logger) *ChunkedReader {
	return &ChunkedReader{
		splitter: splitter,
		opener:   opener,
		logger:   logger,
	}
}

// NewDefaultChunkedReader uses pdfcpu for splitting and ledongthuc for text.
func NewDefaultChunkedReader(logger zerolog.Logger) *ChunkedReader {
	return NewChunkedReader(wrapper.NewPDFCPUSplitter(), wrapper.NewLedongthucOpener(), logger)
}

// Each calls fn for every batch of src in page order. Failures to parse src
// or a batch wrap ErrDocumentRead.
func (r *ChunkedReader) Each(area *Area, src string, batchSize int, fn BatchFunc) (Plan, error) {
	if err := ValidateBatchSize(batchSize); err != nil {
		return Plan{}, err
	}

	doc, err := r.splitter.OpenSplit(src)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrDocumentRead, err)
	}

	batches, err := PlanBatches(doc.PageCount(), batchSize)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{Pages: doc.PageCount(), Batches: batches}

	r.logger.Debug().
		Str("file", filepath.Base(src)).
		Int("pages", plan.Pages).
		Int("batches", len(batches)).
		Msg("Reading document in batches")

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	for _, b := range batches {
		if err := r.readBatch(area, doc, base, b, fn); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

func (r *ChunkedReader) readBatch(area *Area, doc wrapper.SplitDocument, base string, b Batch, fn BatchFunc) (err error) {
	part := area.Path(fmt.Sprintf("%s_part_%d.pdf", base, b.Index+1))
	defer func() {
		if rmErr := os.Remove(part); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf("failed to remove batch %d: %w", b.Index+1, rmErr)
		}
	}()

	if err := doc.WriteRange(b.FirstPage, b.LastPage, part); err != nil {
		return fmt.Errorf("failed to write batch %d (pages %d-%d): %w", b.Index+1, b.FirstPage, b.LastPage, err)
	}

	pages, err := r.opener.OpenPages(part)
	if err != nil {
		return fmt.Errorf("%w: batch %d: %w", ErrDocumentRead, b.Index+1, err)
	}
	defer pages.Close()

	r.logger.Debug().
		Int("batch", b.Index+1).
		Int("first_page", b.FirstPage).
		Int("last_page", b.LastPage).
		Msg("Reading batch")

	return fn(b, pages)
}

// EachPage calls fn with the text of every page of pages in order.
func EachPage(pages wrapper.PageSource, fn func(pageNum int, text string) error) error {
	for i := 1; i <= pages.NumPage(); i++ {
		text, err := pages.PageText(i)
		if err != nil {
			return fmt.Errorf("%w: page %d: %w", ErrDocumentRead, i, err)
		}
		if err := fn(i, text); err != nil {
			return err
		}
	}
	return nil
}
