package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validator checks uploads and local files before any PDF library sees them.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator. A maxFileSize of zero disables the size check.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// MaxFileSize returns the configured size limit in bytes.
func (v *Validator) MaxFileSize() int64 {
	return v.maxFileSize
}

// HasPDFExtension reports whether name ends in ".pdf", ignoring case.
func HasPDFExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// ValidateName checks that an uploaded filename names a PDF.
func (v *Validator) ValidateName(name string) error {
	if !HasPDFExtension(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, name)
	}
	return nil
}

// ValidateSize checks a byte count against the configured limit.
func (v *Validator) ValidateSize(size int64) error {
	if size == 0 {
		return ErrEmptyFile
	}
	if v.maxFileSize > 0 && size > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrFileTooLarge, size, v.maxFileSize)
	}
	return nil
}

// ValidateFile checks that filePath is an existing, non-empty PDF within the
// size limit.
func (v *Validator) ValidateFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("%w: path cannot be empty", ErrFileNotFound)
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: file does not exist: %s", ErrFileNotFound, filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%w: path is a directory, not a file: %s", ErrFileNotFound, filePath)
	}

	if err := v.ValidateName(filePath); err != nil {
		return err
	}

	if err := v.ValidateSize(fileInfo.Size()); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	return nil
}
