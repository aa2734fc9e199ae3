// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table holds search results in tabular form. Each row is a
// record normalized the way JSON records are flattened into data frames:
// nested objects become dotted column names ("journal.title") while
// list values stay intact so they can be exploded later.
package table

// Row is one normalized record keyed by column name.
type Row map[string]any

// Table is an ordered set of rows with columns in first-seen order.
type Table struct {
	columns []string
	seen    map[string]bool
	rows    []Row
}

// FromRecords normalizes decoded JSON objects into a Table. The input is
// not modified.
func FromRecords(records []map[string]any) *Table {
	t := &Table{seen: make(map[string]bool)}
	for _, rec := range records {
		t.append(normalize(rec))
	}
	return t
}

func (t *Table) append(row Row) {
	for _, col := range orderedKeys(row) {
		if !t.seen[col] {
			t.seen[col] = true
			t.columns = append(t.columns, col)
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns returns the column names in first-seen order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Rows returns the rows. Callers must treat them as read-only.
func (t *Table) Rows() []Row {
	return t.rows
}

// Column returns the value of col for every row, with nil where the row
// lacks it.
func (t *Table) Column(col string) []any {
	out := make([]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[col]
	}
	return out
}

// Explode builds a new table with one row per element of the list-valued
// column col across all rows, in row order. Elements that are objects are
// normalized into rows; other elements are skipped. Rows where col is
// missing, null, or not a list contribute nothing.
func (t *Table) Explode(col string) *Table {
	out := &Table{seen: make(map[string]bool)}
	for _, r := range t.rows {
		items, ok := r[col].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out.append(normalize(obj))
		}
	}
	return out
}

// String returns the string value of col in r. Missing, null, and
// non-scalar values report false.
func (r Row) String(col string) (string, bool) {
	return scalarString(r[col])
}

// List returns the list value of col in r.
func (r Row) List(col string) ([]any, bool) {
	v, ok := r[col].([]any)
	return v, ok
}
