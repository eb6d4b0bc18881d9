package roster

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// MatchType tells how a query name matched the reference names.
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchFuzzy MatchType = "fuzzy"
)

// MatchCandidate is the outcome for one query name. Matches is ordered by
// descending similarity; EditDistance is the Levenshtein distance between
// the query and the first match.
type MatchCandidate struct {
	Name         string    `json:"name" msgpack:"name"`
	MatchType    MatchType `json:"match_type" msgpack:"match_type"`
	Similarity   float64   `json:"similarity" msgpack:"similarity"`
	Matches      []string  `json:"existing_matches" msgpack:"existing_matches"`
	EditDistance int       `json:"edit_distance" msgpack:"edit_distance"`
}

// MatchReport is a list of candidates ordered by descending similarity.
type MatchReport []MatchCandidate

// NewMatchReport sorts candidates by similarity, highest first. Candidates with
// equal similarity keep their input order.
func NewMatchReport(candidates []MatchCandidate) MatchReport {
	out := make(MatchReport, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	return out
}

// Counts returns the number of exact and fuzzy candidates.
func (r MatchReport) Counts() (exact, fuzzy int) {
	for _, c := range r {
		switch c.MatchType {
		case MatchExact:
			exact++
		case MatchFuzzy:
			fuzzy++
		}
	}
	return exact, fuzzy
}

// PrintReport writes a human readable listing of r to w.
func PrintReport(w io.Writer, r MatchReport, noColor bool) {
	title := color.New(color.FgWhite, color.Bold)
	exactC := color.New(color.FgRed)
	fuzzyC := color.New(color.FgYellow)
	dim := color.New(color.FgCyan)
	if noColor {
		for _, c := range []*color.Color{title, exactC, fuzzyC, dim} {
			c.DisableColor()
		}
	}

	title.Fprintf(w, "Found %d potential matches\n", len(r))
	if len(r) == 0 {
		return
	}
	width := len("name")
	for _, c := range r {
		width = max(width, utf8.RuneCountInString(c.Name))
	}
	title.Fprintf(w, "%-*s  %-5s  %-10s  %s\n", width, "name", "type", "similarity", "existing_matches")
	for _, c := range r {
		tc := fuzzyC
		if c.MatchType == MatchExact {
			tc = exactC
		}
		fmt.Fprintf(w, "%-*s  ", width, c.Name)
		tc.Fprintf(w, "%-5s", c.MatchType)
		fmt.Fprintf(w, "  %-10.4f  ", c.Similarity)
		dim.Fprintln(w, strings.Join(c.Matches, "; "))
	}
}
