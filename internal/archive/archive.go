// Package archive wraps the record table into a downloadable zip.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEntryName is the name of the table inside the archive.
const DefaultEntryName = "all_parts.csv"

// ContentType is the media type of a packaged archive.
const ContentType = "application/zip"

// entryTime is stamped on every entry so equal tables give equal archives.
var entryTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Archive is a packaged table ready for delivery.
type Archive struct {
	// Name is the suggested download name, unique per archive.
	Name string
	data []byte
}

// Bytes returns the zip content.
func (a *Archive) Bytes() []byte {
	return a.data
}

// Size returns the zip size in bytes.
func (a *Archive) Size() int {
	return len(a.data)
}

// Reader returns a fresh reader over the zip content.
func (a *Archive) Reader() io.Reader {
	return bytes.NewReader(a.data)
}

// Packager builds single-entry archives.
type Packager struct {
	entryName string
}

// NewPackager returns a packager writing its entry as entryName, or
// DefaultEntryName when entryName is empty.
func NewPackager(entryName string) *Packager {
	if entryName == "" {
		entryName = DefaultEntryName
	}
	return &Packager{entryName: entryName}
}

// EntryName returns the name of the single entry.
func (p *Packager) EntryName() string {
	return p.entryName
}

// Package compresses blob into a zip holding exactly one entry.
func (p *Packager) Package(blob []byte) (*Archive, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     p.entryName,
		Method:   zip.Deflate,
		Modified: entryTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create archive entry: %w", err)
	}

	if _, err := w.Write(blob); err != nil {
		return nil, fmt.Errorf("failed to write archive entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	return &Archive{Name: DownloadName(), data: buf.Bytes()}, nil
}

// DownloadName returns a new converted_<token>.zip name.
func DownloadName() string {
	return "converted_" + strings.ReplaceAll(uuid.NewString(), "-", "") + ".zip"
}
