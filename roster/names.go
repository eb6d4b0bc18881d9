package roster

import (
	"fmt"
	"strings"
)

// PersonName is a name split into its last, first and middle parts.
// Middle is empty when the source has no middle initial.
type PersonName struct {
	Last   string
	First  string
	Middle string
}

// CombineName builds the canonical "Last, First Middle" form. Parts are trimmed
// and the trailing space left by an empty middle name is dropped.
func CombineName(last, first, middle string) (string, error) {
	last = strings.TrimSpace(last)
	first = strings.TrimSpace(first)
	middle = strings.TrimSpace(middle)
	if last == "" && first == "" && middle == "" {
		return "", fmt.Errorf("%w: all name parts are blank", ErrInvalidName)
	}
	return strings.TrimSpace(last + ", " + first + " " + middle), nil
}

// Canonical returns the canonical form of p.
func (p PersonName) Canonical() (string, error) {
	return CombineName(p.Last, p.First, p.Middle)
}

// SplitName parses a "Last, First(s) [M.]" value. The last whitespace
// separated token is a middle initial when it ends with a period;
// otherwise everything after the comma is the first name. A value with a
// middle initial and no first name ("Doe, J.") is invalid.
func SplitName(fullname string) (PersonName, error) {
	s := strings.TrimSpace(fullname)
	if s == "" {
		return PersonName{}, fmt.Errorf("%w: %q", ErrInvalidName, fullname)
	}
	if n := strings.Count(s, ","); n != 1 {
		return PersonName{}, fmt.Errorf("%w: name must contain exactly one comma, found %d: %q", ErrInvalidName, n, fullname)
	}
	last, rest, _ := strings.Cut(s, ",")
	last = strings.TrimSpace(last)
	tokens := strings.Fields(rest)
	if last == "" || len(tokens) == 0 {
		return PersonName{}, fmt.Errorf("%w: last and first name are required: %q", ErrInvalidName, fullname)
	}
	p := PersonName{Last: last}
	if tail := tokens[len(tokens)-1]; strings.HasSuffix(tail, ".") {
		p.Middle = tail
		p.First = strings.Join(tokens[:len(tokens)-1], " ")
	} else {
		p.First = strings.Join(tokens, " ")
	}
	if p.First == "" {
		return PersonName{}, fmt.Errorf("%w: no first name before middle initial %q: %q", ErrInvalidName, p.Middle, fullname)
	}
	return p, nil
}
