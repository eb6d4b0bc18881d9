package roster

import (
	"errors"
	"testing"
)

func TestCleanEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{`"Doe, Jane" <J.Doe@Bücher.DE>`, "J.Doe@xn--bcher-kva.de"},
		{"jdoe@Dartmouth.EDU; jane.doe@gmail.com", "jdoe@dartmouth.edu"},
		{"mailto:rick@example.org.", "rick@example.org"},
	}
	for _, c := range cases {
		got, err := CleanEmail(c.in)
		if err != nil || got != c.want {
			t.Fatalf("CleanEmail(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}
	for _, in := range []string{"not an email", "jane@localhost", "jane@exa mple.com", "@example.com", "   "} {
		if _, err := CleanEmail(in); !errors.Is(err, ErrInvalidContact) {
			t.Fatalf("CleanEmail(%q): expected ErrInvalidContact, got %v", in, err)
		}
	}
}

func TestCleanPhoneRegion(t *testing.T) {
	out, err := CleanPhone("(603) 646-1110", "us")
	if err != nil || out != "+16036461110" {
		t.Fatalf("phone clean failed: %v %v", err, out)
	}
	if _, err := CleanPhone("12", ""); !errors.Is(err, ErrInvalidContact) {
		t.Fatalf("short number accepted: %v", err)
	}
}

func TestNormalizeContactColumns(t *testing.T) {
	tb := &Table{
		Header: []string{"PHONE", "EMAIL"},
		Rows: [][]Value{
			{Str("603-646-1110"), Str("A@Example.COM")},
			{Str("n/a"), Null},
		},
	}
	rejected, err := NormalizePhones(tb, "PHONE", "US", discardLogger())
	if err != nil || rejected != 1 {
		t.Fatalf("phones: %d %v", rejected, err)
	}
	rejected, err = NormalizeEmails(tb, "EMAIL", discardLogger())
	if err != nil || rejected != 0 {
		t.Fatalf("emails: %d %v", rejected, err)
	}
	if tb.Rows[0][0].String != "+16036461110" || tb.Rows[1][0].String != "n/a" {
		t.Fatalf("unexpected phones: %#v", tb.Rows)
	}
	if tb.Rows[0][1].String != "A@example.com" || tb.Rows[1][1].Valid {
		t.Fatalf("unexpected emails: %#v", tb.Rows)
	}
}
