package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Native reads the text layer with a pure Go PDF parser.
type Native struct{}

// Text returns every text row of every page on its own line, top to bottom.
// Pages without text (scanned images) contribute nothing.
func (Native) Text(ctx context.Context, data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts, err := pageText(page)
		if err != nil {
			return "", fmt.Errorf("failed to read text of page %d: %w", i, err)
		}
		lines = append(lines, rows(texts)...)
	}
	return strings.Join(lines, "\n"), nil
}

// pageText runs the page's content stream. The parser panics on malformed
// streams.
func pageText(page pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed content stream: %v", rec)
		}
	}()
	return page.Content().Text, nil
}

// rows groups glyphs sharing a baseline into lines. Lines are ordered top
// to bottom and glyphs left to right; glyphs at the same X keep stream order.
func rows(texts []pdf.Text) []string {
	byY := make(map[int64][]pdf.Text)
	for _, t := range texts {
		y := int64(math.Round(t.Y))
		byY[y] = append(byY[y], t)
	}

	ys := make([]int64, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] > ys[j] })

	out := make([]string, 0, len(ys))
	for _, y := range ys {
		row := byY[y]
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		var sb strings.Builder
		for _, t := range row {
			sb.WriteString(t.S)
		}
		out = append(out, sb.String())
	}
	return out
}
