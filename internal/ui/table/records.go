package table

import (
	"strings"

	"github.com/oakwood-commons/hris/internal/formatter"
)

// Record is one row of a record table: the wire fields of an HRIS record plus
// its resolved display fields.
type Record = map[string]any

// NewRecordModel builds a table over records showing keys in order. Headers
// are the keys upper-cased; the filter searches every shown cell.
func NewRecordModel(keys []string) *Model[Record] {
	columns := make([]Column, len(keys))
	for i, k := range keys {
		columns[i] = Column{Title: strings.ToUpper(strings.ReplaceAll(k, "_", " ")), Width: len(k) + 2}
	}
	toRow := func(r Record) Row {
		row := make(Row, len(keys))
		for i, k := range keys {
			if v, ok := r[k]; ok && v != nil {
				row[i] = formatter.Stringify(v)
			}
		}
		return row
	}
	search := func(r Record) string {
		return strings.Join(toRow(r), "\x00")
	}
	return NewModel(columns, toRow, search)
}

// SelectedID returns the "id" field of the row under the cursor.
func SelectedID(m *Model[Record]) (string, bool) {
	r := m.SelectedRow()
	if r == nil {
		return "", false
	}
	id, ok := (*r)["id"].(string)
	return id, ok && id != ""
}
