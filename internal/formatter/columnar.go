package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	sepWidth    = 2
	minColWidth = 3
	maxColWidth = 40
)

// ColumnarOptions configures columnar table rendering.
type ColumnarOptions struct {
	NoColor bool

	// TotalWidth is the available width; 0 means unbounded.
	TotalWidth int

	// RowNumbers adds a leading "#" column counting from 1.
	RowNumbers bool

	// ColumnOrder lists columns to show first. With OnlyOrdered set, other
	// columns are dropped.
	ColumnOrder []string
	OnlyOrdered bool

	Colors TableColors
}

// Columns resolves the column list for records: ColumnOrder entries that
// occur in at least one record, then (unless OnlyOrdered) every remaining
// key in sorted order.
func (o ColumnarOptions) Columns(keys []string) []string {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	cols := make([]string, 0, len(keys))
	used := make(map[string]bool, len(keys))
	for _, c := range o.ColumnOrder {
		if present[c] && !used[c] {
			cols = append(cols, c)
			used[c] = true
		}
	}
	if o.OnlyOrdered && len(cols) > 0 {
		return cols
	}
	for _, k := range keys {
		if !used[k] {
			cols = append(cols, k)
		}
	}
	return cols
}

// RenderColumnar renders records as a table with one column per field.
// keys must be the union of record keys in a stable order.
func RenderColumnar(records []map[string]any, keys []string, opts ColumnarOptions) string {
	cols := opts.Columns(keys)
	if len(cols) == 0 || len(records) == 0 {
		return ""
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = Stringify(r[c])
		}
		rows[i] = row
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = strings.ToUpper(strings.ReplaceAll(c, "_", " "))
	}

	rowNumWidth := 0
	if opts.RowNumbers {
		rowNumWidth = max(len(fmt.Sprint(len(rows))), 1)
	}
	available := 0
	if opts.TotalWidth > 0 {
		available = opts.TotalWidth
		if opts.RowNumbers {
			available -= rowNumWidth + sepWidth
		}
	}
	widths := columnWidths(headers, rows, available)

	st := newTableStyles(opts.Colors)
	render := func(s string, style func(...string) string) string {
		if opts.NoColor {
			return s
		}
		return style(s)
	}

	var b strings.Builder
	sep := strings.Repeat(" ", sepWidth)

	parts := make([]string, 0, len(cols)+1)
	if opts.RowNumbers {
		parts = append(parts, render(padRight("#", rowNumWidth), st.header.Render))
	}
	for i, h := range headers {
		parts = append(parts, render(padRight(truncate(h, widths[i]), widths[i]), st.header.Render))
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	total += sepWidth * (len(widths) - 1)
	if opts.RowNumbers {
		total += rowNumWidth + sepWidth
	}
	b.WriteString(render(strings.Repeat("─", total), st.separator.Render) + "\n")

	for i, row := range rows {
		parts = parts[:0]
		if opts.RowNumbers {
			parts = append(parts, render(runewidth.FillLeft(fmt.Sprint(i+1), rowNumWidth), st.cell.Render))
		}
		for j, v := range row {
			parts = append(parts, render(padRight(truncate(v, widths[j]), widths[j]), st.cell.Render))
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")
	}
	return b.String()
}

// columnWidths sizes each column to its widest cell. When available is
// positive and the table does not fit, columns wider than maxColWidth are
// capped and then the widest column gives up a cell at a time until the
// table fits or every column is at minColWidth.
func columnWidths(headers []string, rows [][]string, available int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, v := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(v))
		}
	}
	if available <= 0 {
		return widths
	}

	usable := available - sepWidth*(len(widths)-1)
	sum := func() int {
		n := 0
		for _, w := range widths {
			n += w
		}
		return n
	}
	if sum() <= usable {
		return widths
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	for sum() > usable {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColWidth {
			break
		}
		widths[widest]--
	}
	return widths
}
