package wrapper

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// LedongthucOpener implements PageOpener using ledongthuc/pdf
type LedongthucOpener struct{}

// NewLedongthucOpener creates a new ledongthuc text opener
func NewLedongthucOpener() *LedongthucOpener {
	return &LedongthucOpener{}
}

// OpenPages opens a PDF from a file path
func (l *LedongthucOpener) OpenPages(path string) (PageSource, error) {
	f, pdfReader, err := openLedongthuc(path)
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryLedongthuc,
			Op:      "open_file",
			Err:     fmt.Errorf("failed to open PDF: %w", err),
		}
	}

	return &LedongthucDocument{
		reader: pdfReader,
		file:   f,
	}, nil
}

// openLedongthuc guards pdf.Open, which panics on some malformed trailers.
func openLedongthuc(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f != nil {
				f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("malformed PDF: %v", rec)
		}
	}()
	return pdf.Open(path)
}

// LedongthucDocument implements PageSource using ledongthuc/pdf
type LedongthucDocument struct {
	reader *pdf.Reader
	file   *os.File
	closed bool
}

// NumPage returns the number of pages in the document
func (d *LedongthucDocument) NumPage() int {
	if d.closed {
		return 0
	}
	return d.reader.NumPage()
}

// PageText extracts the text of a page, one line per visual line. Lines are
// rebuilt from glyph positions, so the text object layout of the page does
// not matter.
func (d *LedongthucDocument) PageText(pageNum int) (text string, err error) {
	if d.closed {
		return "", &WrapperError{Library: LibraryLedongthuc, Op: "page_text", Err: ErrDocumentClosed.Err}
	}

	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return "", &WrapperError{
			Library: LibraryLedongthuc,
			Op:      "page_text",
			Err:     fmt.Errorf("%w %d (document has %d pages)", ErrInvalidPage.Err, pageNum, d.reader.NumPage()),
		}
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &WrapperError{
				Library: LibraryLedongthuc,
				Op:      "page_text",
				Err:     fmt.Errorf("page %d: malformed content stream: %v", pageNum, rec),
			}
		}
	}()

	return layoutText(page.Content().Text), nil
}

// Close closes the document
func (d *LedongthucDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
