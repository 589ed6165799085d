// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is an aligned plain-text table. Widths count display cells.
type Table struct {
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
	// MaxWidth caps a column; longer cells are cut and end in "…".
	MaxWidth map[int]int
}

// Lines renders the header and rows, one string per line.
func (t Table) Lines() []string {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return nil
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(t.cell(row, i)))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	lines := make([]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		lines = append(lines, t.line(t.Headers, widths))
	}
	for _, row := range t.Rows {
		lines = append(lines, t.line(row, widths))
	}
	return lines
}

// Write prints Lines to w.
func (t Table) Write(w io.Writer) error {
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// cell returns row[i] cut to the column cap, or "" past the end of row.
func (t Table) cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	if limit := t.MaxWidth[i]; limit > 0 {
		return runewidth.Truncate(row[i], limit, "…")
	}
	return row[i]
}

func (t Table) line(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		value := t.cell(row, i)
		if t.RightAlign[i] {
			cells[i] = runewidth.FillLeft(value, width)
		} else {
			cells[i] = runewidth.FillRight(value, width)
		}
	}
	return strings.Join(cells, " ")
}
