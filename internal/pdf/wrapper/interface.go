package wrapper

import (
	"fmt"
)

//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go

// PageSource gives access to the plain text of one document's pages.
type PageSource interface {
	// NumPage returns the number of pages in the document.
	NumPage() int
	// PageText returns the extracted text of a 1-based page, or "" when the
	// page has no extractable text.
	PageText(pageNum int) (string, error)
	Close() error
}

// PageOpener opens documents for text extraction.
type PageOpener interface {
	OpenPages(path string) (PageSource, error)
}

// SplitDocument is a parsed document whose pages can be copied out into
// standalone documents.
type SplitDocument interface {
	PageCount() int
	// WriteRange writes pages first..last (1-based, inclusive) to dst.
	WriteRange(first, last int, dst string) error
}

// Splitter opens documents for page-range extraction.
type Splitter interface {
	OpenSplit(path string) (SplitDocument, error)
}

// LibraryType represents the underlying PDF library being used
type LibraryType string

const (
	LibraryPDFCPU     LibraryType = "pdfcpu"
	LibraryLedongthuc LibraryType = "ledongthuc"
)

// WrapperError reports a failure inside one of the PDF libraries
type WrapperError struct {
	Library LibraryType `json:"library"`
	Op      string      `json:"operation"`
	Err     error       `json:"error"`
}

func (e *WrapperError) Error() string {
	return fmt.Sprintf("PDF %s library error in %s: %v", e.Library, e.Op, e.Err)
}

func (e *WrapperError) Unwrap() error {
	return e.Err
}

// Common error variables
var (
	ErrDocumentClosed = &WrapperError{Op: "document", Err: fmt.Errorf("document is closed")}
	ErrInvalidPage    = &WrapperError{Op: "page", Err: fmt.Errorf("invalid page number")}
	ErrInvalidRange   = &WrapperError{Op: "range", Err: fmt.Errorf("invalid page range")}
)
