// Package pdftext extracts the text layer of PDF files.
package pdftext

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads the embedded text layer of a PDF. Pages without a
// text layer (scanned pages) come back with empty Text so callers can
// fall back to OCR.
type Extractor struct{}

// New creates a text-layer extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns one PageText per page, in page order.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.PageText, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]domain.PageText, 0, total)

	for i := 1; i <= total; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text := pageText(reader, i)
		pages = append(pages, domain.PageText{PageNumber: i, Text: text})
	}
	return pages, nil
}

// pageText extracts one page, recovering from parser panics on
// malformed content streams so a bad page reads as blank instead of
// crashing the run.
func pageText(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	return joinRows(groupIntoRows(page.Content().Text))
}

// row collects text fragments sharing a baseline.
type row struct {
	y     float64
	cells []pdf.Text
}

// groupIntoRows clusters positioned fragments by Y coordinate.
// The reader emits one fragment per glyph run, so fragments within
// the tolerance share a visual line even when their baselines differ
// slightly (common in OCR-produced text layers).
func groupIntoRows(texts []pdf.Text) []row {
	const tolerance = 2.0

	var rows []row
	for _, t := range texts {
		if t.S == "" {
			continue
		}

		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < tolerance {
				rows[i].cells = append(rows[i].cells, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, row{y: t.Y, cells: []pdf.Text{t}})
		}
	}

	// PDF origin is bottom-left: descending Y is reading order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	for i := range rows {
		cells := rows[i].cells
		sort.SliceStable(cells, func(a, b int) bool { return cells[a].X < cells[b].X })
	}
	return rows
}

// joinRows rebuilds line text. Fragments are concatenated as-is;
// a space is inserted only across a visible horizontal gap, which
// separates table columns without shredding words into glyphs.
func joinRows(rows []row) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	for _, r := range rows {
		var line strings.Builder
		var prevEnd float64
		for i, c := range r.cells {
			if i > 0 && gapIsSpace(prevEnd, c) {
				line.WriteString(" ")
			}
			line.WriteString(c.S)
			prevEnd = c.X + c.W
		}
		text := strings.TrimRight(line.String(), " ")
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

// gapIsSpace reports whether the horizontal distance from the previous
// fragment to this one reads as whitespace.
func gapIsSpace(prevEnd float64, c pdf.Text) bool {
	threshold := 1.0
	if c.FontSize > 0 {
		threshold = c.FontSize * 0.25
	}
	return c.X-prevEnd > threshold
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
