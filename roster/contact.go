package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	phonenumbers "github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

// ErrInvalidContact marks a phone or email cell that could not be normalized.
var ErrInvalidContact = errors.New("invalid contact value")

// CleanPhone formats a phone number as E.164. region is the ISO 3166 alpha-2
// code used for numbers written without a country prefix.
func CleanPhone(text, region string) (string, error) {
	s, ok := sanitizeText(text)
	if !ok {
		return "", fmt.Errorf("%w: empty phone number", ErrInvalidContact)
	}
	n, err := phonenumbers.Parse(s, strings.ToUpper(region))
	if err != nil {
		return "", fmt.Errorf("%w: phone %q: %v", ErrInvalidContact, text, err)
	}
	if !phonenumbers.IsValidNumber(n) {
		return "", fmt.Errorf("%w: phone %q is not a valid number", ErrInvalidContact, text)
	}
	return phonenumbers.Format(n, phonenumbers.E164), nil
}

// CleanEmail reduces an email cell to a single address. Employer exports hold
// either a bare address or a display form such as `"Doe, Jane" <jdoe@x.edu>`,
// sometimes several addresses separated by ";" of which the first is kept.
// The domain is lower-cased and converted to its ASCII (punycode) form; the
// local part is kept as written.
func CleanEmail(text string) (string, error) {
	s, ok := sanitizeText(text)
	if !ok {
		return "", fmt.Errorf("%w: empty email", ErrInvalidContact)
	}
	first, _, _ := strings.Cut(s, ";")
	first = strings.TrimPrefix(strings.TrimSpace(first), "mailto:")
	addr := first
	if a, err := mail.ParseAddress(first); err == nil {
		addr = a.Address
	} else if i := strings.LastIndex(first, "<"); i >= 0 && strings.HasSuffix(first, ">") {
		addr = first[i+1 : len(first)-1]
	}
	local, domain, ok := cutLast(addr, "@")
	if !ok || local == "" || len(local) > 64 || strings.ContainsAny(local, " <>\"") {
		return "", fmt.Errorf("%w: email %q has no usable address", ErrInvalidContact, text)
	}
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(strings.ToLower(domain), "."))
	if err != nil {
		return "", fmt.Errorf("%w: email domain %q: %v", ErrInvalidContact, domain, err)
	}
	labels := strings.Split(ascii, ".")
	if len(labels) < 2 || strings.Contains(ascii, "..") {
		return "", fmt.Errorf("%w: email domain %q is not fully qualified", ErrInvalidContact, domain)
	}
	return local + "@" + ascii, nil
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// normalizeColumn rewrites col with clean applied to every present cell. Cells
// clean rejects are kept as written and logged with the reason so the operator
// can fix the source.
func normalizeColumn(t *Table, col string, clean func(string) (string, error), logger *slog.Logger) (int, error) {
	logger = loggerOr(logger)
	vals, err := t.Column(col)
	if err != nil {
		return 0, err
	}
	rejected := 0
	for i, v := range vals {
		if !v.Valid {
			continue
		}
		out, err := clean(v.String)
		if err != nil {
			rejected++
			logger.Warn("kept contact value as is", "column", col, "row", i+1, "error", err)
			continue
		}
		vals[i] = Str(out)
	}
	return rejected, t.SetColumn(col, vals)
}

// NormalizePhones rewrites the phone column col of t in E.164 form and returns
// how many cells were left unchanged because they could not be parsed.
func NormalizePhones(t *Table, col, region string, logger *slog.Logger) (int, error) {
	return normalizeColumn(t, col, func(s string) (string, error) { return CleanPhone(s, region) }, logger)
}

// NormalizeEmails rewrites the email column col of t and returns how many cells
// were left unchanged.
func NormalizeEmails(t *Table, col string, logger *slog.Logger) (int, error) {
	return normalizeColumn(t, col, CleanEmail, logger)
}
