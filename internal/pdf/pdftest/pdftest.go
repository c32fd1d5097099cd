// Package pdftest builds small text PDFs for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// Layout selects how the lines of a page are laid out in the content stream.
type Layout int

const (
	// LinePerTextObject draws every line in its own BT/ET block.
	LinePerTextObject Layout = iota
	// SingleTextObject draws all lines of a page in one BT/ET block, moving
	// down with Td, T* and ' in turn.
	SingleTextObject
	// CellPerTextObject draws every word of a line in its own BT/ET block on
	// the line's baseline, last word first.
	CellPerTextObject
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case SingleTextObject:
		return "single_text_object"
	case CellPerTextObject:
		return "cell_per_text_object"
	default:
		return "line_per_text_object"
	}
}

// Layouts lists every layout, for table tests.
var Layouts = []Layout{LinePerTextObject, SingleTextObject, CellPerTextObject}

const (
	fontSize  = 9
	leading   = 12
	glyphWide = 556 // glyph width in 1/1000 em, the same for every code
	cellGap   = 10  // points between words in CellPerTextObject
)

// Build returns a PDF with one page per entry of pages, each line drawn in
// its own text object. Text is encoded as WinAnsi; an empty page has a
// content stream without text.
func Build(pages [][]string) ([]byte, error) {
	return BuildWithLayout(pages, LinePerTextObject)
}

// BuildWithLayout is Build with a chosen content stream layout.
func BuildWithLayout(pages [][]string, layout Layout) ([]byte, error) {
	var (
		buf     bytes.Buffer
		offsets []int
	)

	// Object layout: 1 catalog, 2 page tree, 3 font, then page/content pairs.
	n := len(pages)
	total := 3 + 2*n

	writeObj := func(num int, body string) {
		for len(offsets) < num {
			offsets = append(offsets, 0)
		}
		offsets[num-1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	widths := strings.TrimSpace(strings.Repeat(fmt.Sprintf("%d ", glyphWide), 224))
	writeObj(3, fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica "+
		"/Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 255 /Widths [%s] >>", widths))

	for i, lines := range pages {
		pageNum, contentNum := 4+2*i, 5+2*i

		stream, err := contentStream(lines, layout)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		writeObj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum))
		writeObj(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)

	return buf.Bytes(), nil
}

// WriteFile builds a PDF and writes it to dir/name, failing the test on error.
func WriteFile(t testing.TB, dir, name string, pages [][]string) string {
	t.Helper()
	return WriteFileWithLayout(t, dir, name, pages, LinePerTextObject)
}

// WriteFileWithLayout is WriteFile with a chosen content stream layout.
func WriteFileWithLayout(t testing.TB, dir, name string, pages [][]string, layout Layout) string {
	t.Helper()

	data, err := BuildWithLayout(pages, layout)
	if err != nil {
		t.Fatalf("failed to build PDF: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write PDF: %v", err)
	}
	return path
}

func contentStream(lines []string, layout Layout) (string, error) {
	encoded := make([]string, len(lines))
	for i, line := range lines {
		enc, err := charmap.Windows1252.NewEncoder().String(line)
		if err != nil {
			return "", fmt.Errorf("cannot encode %q: %w", line, err)
		}
		encoded[i] = enc
	}

	var sb strings.Builder
	sb.WriteString("q Q")
	top := 760

	switch layout {
	case SingleTextObject:
		if len(encoded) == 0 {
			break
		}
		fmt.Fprintf(&sb, "\nBT /F1 %d Tf %d TL 20 %d Td", fontSize, leading, top)
		for i, line := range encoded {
			switch {
			case i == 0:
				fmt.Fprintf(&sb, "\n(%s) Tj", escape(line))
			case i%3 == 1:
				fmt.Fprintf(&sb, "\n0 -%d Td (%s) Tj", leading, escape(line))
			case i%3 == 2:
				fmt.Fprintf(&sb, "\nT* (%s) Tj", escape(line))
			default:
				fmt.Fprintf(&sb, "\n(%s) '", escape(line))
			}
		}
		sb.WriteString("\nET")

	case CellPerTextObject:
		for i, line := range encoded {
			y := top - i*leading
			words := strings.Fields(line)
			xs := make([]float64, len(words))
			x := 20.0
			for j, w := range words {
				xs[j] = x
				x += textWidth(w) + cellGap
			}
			for j := len(words) - 1; j >= 0; j-- {
				fmt.Fprintf(&sb, "\nBT /F1 %d Tf %.2f %d Td (%s) Tj ET", fontSize, xs[j], y, escape(words[j]))
			}
		}

	default:
		for i, line := range encoded {
			fmt.Fprintf(&sb, "\nBT /F1 %d Tf 20 %d Td (%s) Tj ET", fontSize, top-i*leading, escape(line))
		}
	}
	return sb.String(), nil
}

// textWidth is the drawn width of an encoded string in points.
func textWidth(s string) float64 {
	return float64(len(s)) * glyphWide / 1000 * fontSize
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
