package wrapper

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Tolerances, in points, used when rebuilding lines from positioned glyphs.
const (
	// rowTolerance is the largest baseline difference between glyphs that
	// still belong to the same line.
	rowTolerance = 3.0
	// gapTolerance is the largest horizontal gap between glyphs that does
	// not separate two words.
	gapTolerance = 3.0
)

// layoutText rebuilds the lines of a page from its positioned glyphs.
// Glyphs are grouped into lines by baseline, lines are ordered top to bottom
// and each line is read left to right. A visible gap between two glyphs
// becomes a single space. Lines are joined with "\n".
func layoutText(glyphs []pdf.Text) string {
	glyphs = printable(glyphs)
	if len(glyphs) == 0 {
		return ""
	}

	// Top to bottom; content stream order is kept for equal baselines.
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].Y > glyphs[j].Y
	})

	var lines []string
	start := 0
	for i := 1; i <= len(glyphs); i++ {
		if i < len(glyphs) && glyphs[start].Y-glyphs[i].Y <= rowTolerance {
			continue
		}
		if line := readLine(glyphs[start:i]); line != "" {
			lines = append(lines, line)
		}
		start = i
	}
	return strings.Join(lines, "\n")
}

// readLine joins the glyphs of one line left to right.
func readLine(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].X < glyphs[j].X
	})

	var sb strings.Builder
	var prev *pdf.Text
	for i := range glyphs {
		g := &glyphs[i]
		if prev != nil && g.X-(prev.X+prev.W) > gapTolerance &&
			!isBlank(prev.S) && !isBlank(g.S) {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.S)
		prev = g
	}
	return strings.TrimSpace(sb.String())
}

// printable drops glyphs that carry no visible text, such as the line
// markers the extractor emits after TJ arrays. Whitespace glyphs are kept
// as a plain space.
func printable(glyphs []pdf.Text) []pdf.Text {
	out := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" || g.S == "\r" {
			continue
		}
		if isBlank(g.S) {
			g.S = " "
		}
		out = append(out, g)
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
