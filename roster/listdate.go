package roster

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

var listDate = regexp.MustCompile(`(\d{4})\.(\d{2})\.(\d{2})`)

// ExtractListDate returns the first YYYY.MM.DD date in text. It reports false
// when there is none or the first one is not a real calendar date.
func ExtractListDate(text string) (string, bool) {
	m := listDate.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return "", false
	}
	return m[0], true
}

// ListIdentifier names a roster after the date in its file name,
// "BU List Employer YYYY.MM.DD".
func ListIdentifier(path string) (string, error) {
	date, ok := ExtractListDate(filepath.Base(path))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoListDate, filepath.Base(path))
	}
	return "BU List Employer " + date, nil
}
