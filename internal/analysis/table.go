package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind classifies a single cell.
type Kind int

const (
	Missing Kind = iota
	Number
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "missing"
	}
}

// Value is one table cell. Raw keeps the text the cell was read from so that
// exports reproduce the source rather than a reformatted float.
type Value struct {
	Kind Kind
	Num  float64
	Raw  string
}

// NumberValue builds a numeric cell. If raw is empty the shortest decimal
// representation of f is used.
func NumberValue(f float64, raw string) Value {
	if raw == "" {
		raw = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return Value{Kind: Number, Num: f, Raw: raw}
}

// TextValue builds a string cell; an empty string is a missing cell.
func TextValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Kind: Text, Raw: s}
}

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool { return v.Kind == Missing }

// String returns the display form of the cell ("" when missing).
func (v Value) String() string { return v.Raw }

// Float coerces the cell to a number. Text that parses as a float is accepted;
// anything else, including NaN, is reported as missing.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case Number:
		if math.IsNaN(v.Num) {
			return 0, false
		}
		return v.Num, true
	case Text:
		return parseNumeric(v.Raw)
	default:
		return 0, false
	}
}

// parseNumeric is a strict coercion: surrounding spaces are ignored, thousands
// separators and locale decimal commas are not.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// inferValue types a cell read from a text source such as CSV.
func inferValue(s string) Value {
	t := strings.TrimSpace(s)
	if t == "" {
		return Value{}
	}
	if f, ok := parseNumeric(t); ok {
		return NumberValue(f, t)
	}
	return TextValue(s)
}

// Table is an ordered, immutable set of rows over named columns. Views derived
// from a table share row storage with it; rows are never modified after load.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]Value

	index map[string]int
}

// NewTable builds a table, normalising the header the way spreadsheet readers
// usually do: blank names become "Unnamed: i" and repeated names get a ".n"
// suffix. Rows are padded or cut to the header width.
func NewTable(name string, columns []string, rows [][]Value) *Table {
	cols := make([]string, len(columns))
	next := make(map[string]int, len(columns))
	used := make(map[string]bool, len(columns))
	for i, c := range columns {
		c = strings.TrimSpace(c)
		if c == "" {
			c = fmt.Sprintf("Unnamed: %d", i)
		}
		col := c
		if used[col] {
			for n := max(next[c], 1); ; n++ {
				cand := fmt.Sprintf("%s.%d", c, n)
				if !used[cand] {
					col = cand
					next[c] = n + 1
					break
				}
			}
		}
		used[col] = true
		cols[i] = col
	}
	out := make([][]Value, len(rows))
	for i, r := range rows {
		if len(r) != len(cols) {
			tmp := make([]Value, len(cols))
			copy(tmp, r)
			r = tmp
		}
		out[i] = r
	}
	return newTable(name, cols, out)
}

func newTable(name string, cols []string, rows [][]Value) *Table {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, ok := idx[c]; !ok {
			idx[c] = i
		}
	}
	return &Table{Name: name, Columns: cols, Rows: rows, index: idx}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether name is an exact column name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// ColumnIndex returns the position of an exact column name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t == nil || name == "" {
		return 0, false
	}
	i, ok := t.index[name]
	return i, ok
}

// Column returns the cells of the named column in row order.
func (t *Table) Column(name string) ([]Value, bool) {
	j, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[j]
	}
	return out, true
}

// Numeric returns the coerced numeric values of a column, dropping cells that
// are missing or do not parse. An unknown column yields nil.
func (t *Table) Numeric(name string) []float64 {
	j, ok := t.ColumnIndex(name)
	if !ok {
		return nil
	}
	var out []float64
	for _, r := range t.Rows {
		if f, ok := r[j].Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Select returns a view with the rows for which keep returns true, in their
// original order.
func (t *Table) Select(keep func(row []Value) bool) *Table {
	rows := make([][]Value, 0, len(t.Rows))
	for _, r := range t.Rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return t.view(rows)
}

// Head returns a view of at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.view(t.Rows[:n:n])
}

func (t *Table) view(rows [][]Value) *Table {
	return &Table{Name: t.Name, Columns: t.Columns, Rows: rows, index: t.index}
}
