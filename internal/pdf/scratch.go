package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const dirPerm = 0o750

// Scratch is the directory under which each request gets its own private
// working area.
type Scratch struct {
	root string
}

// NewScratch creates root if needed and returns a scratch space rooted there.
func NewScratch(root string) (*Scratch, error) {
	if root == "" {
		return nil, fmt.Errorf("scratch directory cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scratch directory: %w", err)
	}

	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return &Scratch{root: abs}, nil
}

// Root returns the absolute scratch directory.
func (s *Scratch) Root() string {
	return s.root
}

// NewArea creates a uniquely named working directory for one request.
func (s *Scratch) NewArea() (*Area, error) {
	name := "req_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	dir := filepath.Join(s.root, name)
	if err := os.Mkdir(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create working area: %w", err)
	}
	return &Area{dir: dir}, nil
}

// Area is one request's working directory. Close removes it and everything
// in it, so callers defer Close right after NewArea.
type Area struct {
	dir string
}

// Dir returns the area's directory.
func (a *Area) Dir() string {
	return a.dir
}

// Path returns the location of name inside the area. Only the base name of
// name is used, so client supplied names cannot escape the area.
func (a *Area) Path(name string) string {
	return filepath.Join(a.dir, filepath.Base(filepath.Clean("/"+name)))
}

// Save copies r into the area as name. When limit is positive, reading more
// than limit bytes fails with ErrFileTooLarge and leaves nothing behind.
func (a *Area) Save(name string, r io.Reader, limit int64) (string, int64, error) {
	dst := a.Path(name)
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %w", name, err)
	}

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dst)
		return "", 0, fmt.Errorf("failed to write %s: %w", name, err)
	}

	if limit > 0 && n > limit {
		_ = os.Remove(dst)
		return "", 0, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, limit)
	}

	return dst, n, nil
}

// Close removes the area and its contents.
func (a *Area) Close() error {
	if err := os.RemoveAll(a.dir); err != nil {
		return fmt.Errorf("failed to remove working area: %w", err)
	}
	return nil
}
