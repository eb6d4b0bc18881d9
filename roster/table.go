package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Value is a single table cell. A Value with Valid unset is a missing (null) cell.
type Value struct {
	String string
	Valid  bool
}

// Str returns a present cell holding s.
func Str(s string) Value { return Value{String: s, Valid: true} }

// Null is the missing cell.
var Null = Value{}

// Strs wraps plain strings as present cells.
func Strs(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = Str(s)
	}
	return out
}

// OrEmpty returns the cell text, or "" for a missing cell.
func (v Value) OrEmpty() string {
	if !v.Valid {
		return ""
	}
	return v.String
}

// Table is a fully materialized rectangular table of nullable cells.
type Table struct {
	Header []string
	Rows   [][]Value
}

func (t *Table) index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool { return t.index(name) >= 0 }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	p := t.index(name)
	if p < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumns, name)
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[p]
	}
	return out, nil
}

// SetColumn replaces the named column, appending it when absent.
func (t *Table) SetColumn(name string, vals []Value) error {
	if len(vals) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(vals), len(t.Rows))
	}
	p := t.index(name)
	if p < 0 {
		t.Header = append(t.Header, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], vals[i])
		}
		return nil
	}
	for i := range t.Rows {
		t.Rows[i][p] = vals[i]
	}
	return nil
}

// SetStrings is SetColumn for columns without missing cells.
func (t *Table) SetStrings(name string, vals []string) error {
	return t.SetColumn(name, Strs(vals...))
}

// RequireColumns fails with ErrMissingColumns naming every absent column.
func (t *Table) RequireColumns(names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %q", ErrMissingColumns, missing)
	}
	return nil
}

// CheckEmptyCells fails when a present cell is empty, which after trimming means
// the source held whitespace only.
func (t *Table) CheckEmptyCells() error {
	for i, row := range t.Rows {
		for j, v := range row {
			if v.Valid && v.String == "" {
				return fmt.Errorf("%w: row %d, column %q", ErrEmptyCell, i+1, t.Header[j])
			}
		}
	}
	return nil
}

// ColumnNulls summarizes missing cells in one column.
type ColumnNulls struct {
	Column  string
	Nulls   int
	Percent float64
}

// NullStats returns the columns that have at least one missing cell, in header order.
func (t *Table) NullStats() []ColumnNulls {
	var out []ColumnNulls
	if len(t.Rows) == 0 {
		return out
	}
	for j, h := range t.Header {
		n := 0
		for _, row := range t.Rows {
			if !row[j].Valid {
				n++
			}
		}
		if n == 0 {
			continue
		}
		pct := math.Round(float64(n)/float64(len(t.Rows))*10000) / 100
		out = append(out, ColumnNulls{Column: h, Nulls: n, Percent: pct})
	}
	return out
}

// ReadTableCSV reads a CSV stream with a header line. Cells are trimmed and
// empty fields become missing cells; short records are padded with missing cells.
func ReadTableCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV input")
		}
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return t, nil
			}
			return nil, err
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("record has %d fields, header has %d", len(rec), len(header))
		}
		row := make([]Value, len(header))
		for i, f := range rec {
			if f == "" {
				continue
			}
			row[i] = Str(strings.TrimSpace(f))
		}
		t.Rows = append(t.Rows, row)
	}
}

// LoadTableCSV reads a CSV file and checks that the given columns exist.
func LoadTableCSV(path string, required ...string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTableCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := t.RequireColumns(required...); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteTableCSV writes the table with a header line; missing cells become empty fields.
func WriteTableCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	rec := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i := range rec {
			rec[i] = row[i].OrEmpty()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
