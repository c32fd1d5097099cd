package convert

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a3tai/pdf-records/internal/pdf"
)

// Kind classifies conversion failures.
type Kind int

const (
	KindProcessingError Kind = iota
	KindMissingInput
	KindInvalidFormat
	KindInvalidParameter
	KindDocumentReadError
)

// String returns the code reported to callers.
func (k Kind) String() string {
	switch k {
	case KindMissingInput:
		return "MissingInput"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindInvalidParameter:
		return "InvalidParameter"
	case KindDocumentReadError:
		return "DocumentReadError"
	default:
		return "ProcessingError"
	}
}

// HTTPStatus maps caller mistakes to 4xx and processing failures to 5xx.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindMissingInput, KindInvalidFormat, KindInvalidParameter:
		return http.StatusBadRequest
	case KindDocumentReadError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified conversion failure. Message is safe to show to the
// caller; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus refines the kind's status: oversized uploads report 413.
func (e *Error) HTTPStatus() int {
	if errors.Is(e.Err, pdf.ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return e.Kind.HTTPStatus()
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Classify converts any error into an *Error. Errors that are already
// classified are returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case errors.Is(err, pdf.ErrInvalidBatchSize):
		return newError(KindInvalidParameter, "batch size must be a positive integer", err)
	case errors.Is(err, pdf.ErrFileTooLarge):
		return newError(KindInvalidParameter, "file exceeds the maximum allowed size", err)
	case errors.Is(err, pdf.ErrFileNotFound):
		return newError(KindMissingInput, "no readable file at the given path", err)
	case errors.Is(err, pdf.ErrInvalidFormat):
		return newError(KindInvalidFormat, "only .pdf files are accepted", err)
	case errors.Is(err, pdf.ErrDocumentRead), errors.Is(err, pdf.ErrEmptyFile):
		return newError(KindDocumentReadError, "the document could not be read as a PDF", err)
	default:
		return newError(KindProcessingError, fmt.Sprintf("failed to process document: %v", err), err)
	}
}

// KindOf returns the kind of err after classification.
func KindOf(err error) Kind {
	return Classify(err).Kind
}

// ParseBatchSize reads a batch size parameter. An empty value selects def.
func ParseBatchSize(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newError(KindInvalidParameter, "batch size must be a positive integer",
			fmt.Errorf("%w: %q", pdf.ErrInvalidBatchSize, raw))
	}
	if err := pdf.ValidateBatchSize(n); err != nil {
		return 0, newError(KindInvalidParameter, "batch size must be a positive integer", err)
	}
	return n, nil
}
