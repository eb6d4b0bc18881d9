package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Output columns written when a full name column is split.
const (
	LastColumn   = "Last"
	FirstColumn  = "First"
	MiddleColumn = "Middle"
)

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// SplitNameColumn splits every full name in vals. Rows that cannot be parsed,
// and rows whose parts do not rebuild the original (trimmed) value, are all
// collected and returned together; nothing is returned unless every row is clean.
func SplitNameColumn(vals []Value) ([]PersonName, error) {
	out := make([]PersonName, len(vals))
	var invalid []error
	var mismatches []NameMismatch
	for i, v := range vals {
		if !v.Valid {
			invalid = append(invalid, fmt.Errorf("row %d: %w: missing value", i+1, ErrInvalidName))
			continue
		}
		p, err := SplitName(v.String)
		if err != nil {
			invalid = append(invalid, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		rebuilt, _ := p.Canonical()
		if want := strings.TrimSpace(v.String); rebuilt != want {
			mismatches = append(mismatches, NameMismatch{Row: i + 1, Value: v.String, Rebuilt: rebuilt})
			continue
		}
		out[i] = p
	}
	if len(invalid) > 0 {
		return nil, errors.Join(invalid...)
	}
	if len(mismatches) > 0 {
		return nil, &NameFormatError{Mismatches: mismatches}
	}
	return out, nil
}

// ParseFullNames splits the full name column col into the Last, First and
// Middle columns of t.
func ParseFullNames(t *Table, col string, logger *slog.Logger) error {
	logger = loggerOr(logger)
	vals, err := t.Column(col)
	if err != nil {
		return fmt.Errorf("full name column: %w", err)
	}
	names, err := SplitNameColumn(vals)
	if err != nil {
		var nfe *NameFormatError
		if errors.As(err, &nfe) {
			for _, m := range nfe.Mismatches {
				logger.Error("unexpected name format", "row", m.Row, "value", m.Value, "parsed", m.Rebuilt)
			}
		}
		return err
	}
	last := make([]string, len(names))
	first := make([]string, len(names))
	middle := make([]string, len(names))
	for i, n := range names {
		last[i], first[i], middle[i] = n.Last, n.First, n.Middle
	}
	for _, c := range []struct {
		name string
		vals []string
	}{{LastColumn, last}, {FirstColumn, first}, {MiddleColumn, middle}} {
		if err := t.SetStrings(c.name, c.vals); err != nil {
			return err
		}
	}
	logger.Info("parsed full names", "column", col, "rows", len(names))
	return nil
}

// CombineNameColumns builds the canonical name of every row from the
// last, first and middle columns. Missing cells count as empty parts.
func CombineNameColumns(t *Table, cols [3]string) ([]string, error) {
	if err := t.RequireColumns(cols[:]...); err != nil {
		return nil, err
	}
	last, _ := t.Column(cols[0])
	first, _ := t.Column(cols[1])
	middle, _ := t.Column(cols[2])
	out := make([]string, len(t.Rows))
	var errs []error
	for i := range t.Rows {
		name, err := CombineName(last[i].OrEmpty(), first[i].OrEmpty(), middle[i].OrEmpty())
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		out[i] = name
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// CheckRequiredNameFields fails when any last or first name is missing. A middle
// column that is missing for every row only produces a warning.
func CheckRequiredNameFields(t *Table, cols [3]string, logger *slog.Logger) error {
	logger = loggerOr(logger)
	if err := t.RequireColumns(cols[:]...); err != nil {
		return err
	}
	for _, c := range cols[:2] {
		vals, _ := t.Column(c)
		var rows []int
		for i, v := range vals {
			if !v.Valid {
				rows = append(rows, i+1)
			}
		}
		if len(rows) > 0 {
			return fmt.Errorf("%w in column %q, rows %v", ErrMissingNameData, c, rows)
		}
	}
	middle, _ := t.Column(cols[2])
	allMissing := true
	for _, v := range middle {
		if v.Valid {
			allMissing = false
			break
		}
	}
	if allMissing {
		logger.Warn("100% missing data in middle name column", "column", cols[2])
	}
	return nil
}

// ApplyNameColumns checks or derives the name columns of a roster. One column is
// a full name to split; three columns are last, first and middle names.
func ApplyNameColumns(t *Table, cols []string, logger *slog.Logger) error {
	switch len(cols) {
	case 1:
		return ParseFullNames(t, cols[0], logger)
	case 3:
		return CheckRequiredNameFields(t, [3]string{cols[0], cols[1], cols[2]}, logger)
	default:
		return fmt.Errorf("%w: got %d %q", ErrInvalidNameColumnSpec, len(cols), cols)
	}
}
