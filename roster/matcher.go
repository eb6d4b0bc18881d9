package roster

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	levenshtein "github.com/agnivade/levenshtein"
	"golang.org/x/sync/errgroup"
)

// Option tunes FindMatches.
type Option func(*matchConfig)

type matchConfig struct {
	workers int
	fold    bool
}

// WithWorkers compares up to n queries concurrently. Output is identical to
// the sequential run.
func WithWorkers(n int) Option {
	return func(c *matchConfig) { c.workers = n }
}

// WithFoldAccents strips diacritics from both sides before comparing, so
// "José" and "jose" are an exact match.
func WithFoldAccents() Option {
	return func(c *matchConfig) { c.fold = true }
}

func (c *matchConfig) normalize(v Value) (string, bool) {
	if !v.Valid {
		return "", false
	}
	s := strings.TrimSpace(strings.ToLower(v.String))
	if c.fold {
		s = foldAccents(s)
	}
	return s, true
}

type refName struct {
	name  string
	runes int
}

type scored struct {
	name string
	sim  float64
}

// FindMatches looks up every query name in the reference names. Both sides are
// lower-cased and trimmed, and missing cells are dropped. A query present in the
// reference set is an exact match; otherwise every reference name with a Ratio
// of at least threshold is a fuzzy match, best first, ties in name order. Queries
// with no match are left out of the report.
//
// Fuzzy lookup compares each query with every distinct reference name, so the
// cost grows with len(queries) * len(reference). Only pairs whose lengths make
// the threshold unreachable are skipped.
func FindMatches(queries, reference []Value, threshold float64, opts ...Option) (MatchReport, error) {
	if err := CheckThreshold(threshold); err != nil {
		return nil, err
	}
	cfg := matchConfig{workers: 1}
	for _, o := range opts {
		o(&cfg)
	}

	qs := make([]string, 0, len(queries))
	for _, v := range queries {
		if s, ok := cfg.normalize(v); ok {
			qs = append(qs, s)
		}
	}
	set := make(map[string]struct{}, len(reference))
	for _, v := range reference {
		if s, ok := cfg.normalize(v); ok {
			set[s] = struct{}{}
		}
	}
	refs := make([]refName, 0, len(set))
	for s := range set {
		refs = append(refs, refName{name: s, runes: utf8.RuneCountInString(s)})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].name < refs[j].name })

	results := make([]*MatchCandidate, len(qs))
	if cfg.workers <= 1 {
		for i, q := range qs {
			results[i] = matchOne(q, set, refs, threshold)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(cfg.workers)
		for i, q := range qs {
			i, q := i, q
			g.Go(func() error {
				results[i] = matchOne(q, set, refs, threshold)
				return nil
			})
		}
		_ = g.Wait()
	}

	found := make([]MatchCandidate, 0, len(results))
	for _, r := range results {
		if r != nil {
			found = append(found, *r)
		}
	}
	return NewMatchReport(found), nil
}

// CheckThreshold rejects similarity thresholds outside [0, 1].
func CheckThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

func matchOne(q string, set map[string]struct{}, refs []refName, threshold float64) *MatchCandidate {
	if _, ok := set[q]; ok {
		return &MatchCandidate{Name: q, MatchType: MatchExact, Similarity: 1.0, Matches: []string{q}}
	}
	ql := utf8.RuneCountInString(q)
	var hits []scored
	for _, r := range refs {
		if ratioBound(ql, r.runes) < threshold {
			continue
		}
		if sim := Ratio(q, r.name); sim >= threshold {
			hits = append(hits, scored{name: r.name, sim: sim})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].sim > hits[j].sim })
	matches := make([]string, len(hits))
	for i, c := range hits {
		matches[i] = c.name
	}
	return &MatchCandidate{
		Name:         q,
		MatchType:    MatchFuzzy,
		Similarity:   hits[0].sim,
		Matches:      matches,
		EditDistance: levenshtein.ComputeDistance(q, matches[0]),
	}
}
