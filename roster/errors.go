package roster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidName           = errors.New("invalid name")
	ErrUnexpectedNameFormat  = errors.New("full name data in unexpected format")
	ErrMissingNameData       = errors.New("missing name data")
	ErrInvalidThreshold      = errors.New("similarity threshold must be between 0 and 1")
	ErrInvalidNameColumnSpec = errors.New("invalid number of name columns, expected 1 (fullname) or 3 (last, first, middle)")

	ErrMissingColumns = errors.New("missing required columns")
	ErrEmptyCell      = errors.New("input data has empty (non-null) cells")
	ErrMissingProgram = errors.New("program data has null values")
	ErrUnknownProgram = errors.New("unrecognized program/field of study data")
	ErrNoListDate     = errors.New("no valid YYYY.MM.DD date in file name")
)

// NameMismatch is one row whose split parts do not rebuild the original value.
type NameMismatch struct {
	Row     int
	Value   string
	Rebuilt string
}

// NameFormatError lists every row that failed the full name round-trip check.
type NameFormatError struct {
	Mismatches []NameMismatch
}

func (e *NameFormatError) Error() string {
	parts := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		parts = append(parts, fmt.Sprintf("row %d: %q (parsed as %q)", m.Row, m.Value, m.Rebuilt))
	}
	return fmt.Sprintf("%s: %s", ErrUnexpectedNameFormat, strings.Join(parts, "; "))
}

func (e *NameFormatError) Unwrap() error { return ErrUnexpectedNameFormat }

// UnknownProgramError lists program values absent from the program mapping.
type UnknownProgramError struct {
	Programs []string
}

func (e *UnknownProgramError) Error() string {
	return fmt.Sprintf("%s, add them to the program mapping file: %q", ErrUnknownProgram, e.Programs)
}

func (e *UnknownProgramError) Unwrap() error { return ErrUnknownProgram }
