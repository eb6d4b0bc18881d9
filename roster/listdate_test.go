package roster

import (
	"errors"
	"testing"
)

func TestExtractListDate(t *testing.T) {
	if d, ok := ExtractListDate("Dartmouth BU 2024.09.01 final.xlsx"); !ok || d != "2024.09.01" {
		t.Fatalf("unexpected date: %q %v", d, ok)
	}
	for _, s := range []string{"no date here.csv", "list 2024.02.30.csv", "list 2024-09-01.csv"} {
		if _, ok := ExtractListDate(s); ok {
			t.Fatalf("%q should not yield a date", s)
		}
	}
}

func TestListIdentifier(t *testing.T) {
	id, err := ListIdentifier("/tmp/in/BU 2024.09.01.csv")
	if err != nil || id != "BU List Employer 2024.09.01" {
		t.Fatalf("unexpected id: %q %v", id, err)
	}
	if _, err := ListIdentifier("/tmp/2024.09.01/roster.csv"); !errors.Is(err, ErrNoListDate) {
		t.Fatalf("date must come from the file name, got %v", err)
	}
}
