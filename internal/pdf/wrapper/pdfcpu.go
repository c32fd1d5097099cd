package wrapper

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPUSplitter implements Splitter using pdfcpu
type PDFCPUSplitter struct {
	conf *model.Configuration
}

// NewPDFCPUSplitter creates a splitter that parses in relaxed validation mode
func NewPDFCPUSplitter() *PDFCPUSplitter {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUSplitter{conf: conf}
}

// OpenSplit parses the document at path and counts its pages
func (p *PDFCPUSplitter) OpenSplit(path string) (SplitDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "open_file",
			Err:     fmt.Errorf("failed to open file: %w", err),
		}
	}
	defer file.Close()

	ctx, err := api.ReadContext(file, p.conf)
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "open_file",
			Err:     fmt.Errorf("failed to read PDF context: %w", err),
		}
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "open_file",
			Err:     fmt.Errorf("failed to ensure page count: %w", err),
		}
	}

	return &PDFCPUDocument{
		path:      path,
		pageCount: ctx.PageCount,
		conf:      p.conf,
	}, nil
}

// PDFCPUDocument implements SplitDocument using pdfcpu
type PDFCPUDocument struct {
	path      string
	pageCount int
	conf      *model.Configuration
}

// PageCount returns the number of pages in the document
func (d *PDFCPUDocument) PageCount() int {
	return d.pageCount
}

// WriteRange writes pages first..last into a new document at dst
func (d *PDFCPUDocument) WriteRange(first, last int, dst string) error {
	if first < 1 || last < first || last > d.pageCount {
		return &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "write_range",
			Err:     fmt.Errorf("%w %d-%d (document has %d pages)", ErrInvalidRange.Err, first, last, d.pageCount),
		}
	}

	selected := []string{fmt.Sprintf("%d-%d", first, last)}
	if err := api.TrimFile(d.path, dst, selected, d.conf); err != nil {
		return &WrapperError{
			Library: LibraryPDFCPU,
			Op:      "write_range",
			Err:     fmt.Errorf("failed to write pages %d-%d: %w", first, last, err),
		}
	}
	return nil
}
