package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a PDF found in a directory.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Catalog lists the PDFs available under a directory.
type Catalog struct {
	validator *Validator
}

// NewCatalog creates a catalog that skips files failing validator.
func NewCatalog(validator *Validator) *Catalog {
	return &Catalog{validator: validator}
}

// List walks directory and returns up to limit PDFs. A limit of zero or less
// lists everything. Hidden directories are skipped.
func (c *Catalog) List(directory string, limit int) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	if _, err := os.Stat(absDirectory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	var files []FileInfo
	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Keep walking past unreadable entries.
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if limit > 0 && len(files) >= limit {
			return filepath.SkipAll
		}

		// Symlinks are not followed.
		if !d.Type().IsRegular() || !HasPDFExtension(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if err := c.validator.ValidateSize(info.Size()); err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return files, nil
}
