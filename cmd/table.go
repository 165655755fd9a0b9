package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const cellGap = "  "

// column is one table column. Numbers read better with right set.
type column struct {
	title string
	width int
	right bool
}

// table writes fixed-width rows measured in terminal cells, so titles with
// wide runes stay aligned.
type table struct {
	out  io.Writer
	cols []column
}

func newTable(out io.Writer, cols ...column) *table {
	return &table{out: out, cols: cols}
}

// header prints the column titles followed by a rule.
func (t *table) header() {
	titles := make([]any, len(t.cols))
	for i, c := range t.cols {
		titles[i] = c.title
	}
	t.row(titles...)
	t.rule()
}

func (t *table) rule() {
	w := 0
	for _, c := range t.cols {
		w += c.width
	}
	w += len(cellGap) * (len(t.cols) - 1)
	fmt.Fprintln(t.out, strings.Repeat("─", w))
}

// row prints one cell per column. Missing cells are blank and long ones
// are cut with an ellipsis.
func (t *table) row(cells ...any) {
	parts := make([]string, len(t.cols))
	for i, c := range t.cols {
		s := ""
		if i < len(cells) {
			s = fmt.Sprint(cells[i])
		}
		parts[i] = fit(s, c)
	}
	fmt.Fprintln(t.out, strings.TrimRight(strings.Join(parts, cellGap), " "))
}

// note prints the first cell and free text in place of the other columns.
func (t *table) note(first, text string) {
	fmt.Fprintln(t.out, fit(first, t.cols[0])+cellGap+text)
}

func fit(s string, c column) string {
	s = runewidth.Truncate(s, c.width, "…")
	if c.right {
		return runewidth.FillLeft(s, c.width)
	}
	return runewidth.FillRight(s, c.width)
}
