package pdf

import "errors"

// Sentinel errors returned by the document layer. Callers wrap them with
// context and classify them with errors.Is.
var (
	ErrDocumentRead     = errors.New("document cannot be read")
	ErrInvalidBatchSize = errors.New("batch size must be a positive integer")
	ErrInvalidFormat    = errors.New("file is not a PDF")
	ErrFileTooLarge     = errors.New("file too large")
	ErrEmptyFile        = errors.New("file is empty")
	ErrFileNotFound     = errors.New("file not found")
)
