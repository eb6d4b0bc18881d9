package roster

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MatchesSeparator joins the existing_matches list in flat exports.
const MatchesSeparator = "; "

var reportHeader = []string{"name", "match_type", "similarity", "existing_matches", "edit_distance"}

// WriteReportCSV writes r as CSV with the header
// name, match_type, similarity, existing_matches, edit_distance.
func WriteReportCSV(w io.Writer, r MatchReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	rec := make([]string, len(reportHeader))
	for _, c := range r {
		rec[0] = c.Name
		rec[1] = string(c.MatchType)
		rec[2] = strconv.FormatFloat(c.Similarity, 'f', -1, 64)
		rec[3] = strings.Join(c.Matches, MatchesSeparator)
		rec[4] = strconv.Itoa(c.EditDistance)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadReportCSV reads a report written by WriteReportCSV. Columns are found by
// header name; edit_distance may be absent.
func ReadReportCSV(r io.Reader) (MatchReport, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}
	get := func(rec []string, key string) string {
		if p, ok := idx[key]; ok && p < len(rec) {
			return rec[p]
		}
		return ""
	}
	var out MatchReport
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		c := MatchCandidate{
			Name:      get(rec, "name"),
			MatchType: MatchType(get(rec, "match_type")),
		}
		if c.Similarity, err = strconv.ParseFloat(get(rec, "similarity"), 64); err != nil {
			return nil, fmt.Errorf("similarity of %q: %w", c.Name, err)
		}
		if m := get(rec, "existing_matches"); m != "" {
			c.Matches = strings.Split(m, MatchesSeparator)
		}
		if d := get(rec, "edit_distance"); d != "" {
			if c.EditDistance, err = strconv.Atoi(d); err != nil {
				return nil, fmt.Errorf("edit distance of %q: %w", c.Name, err)
			}
		}
		out = append(out, c)
	}
}

// WriteReportJSONL writes one JSON object per candidate.
func WriteReportJSONL(w io.Writer, r MatchReport) error {
	enc := json.NewEncoder(w)
	for i := range r {
		if err := enc.Encode(&r[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadReportJSONL reads a report from a JSON lines stream.
func ReadReportJSONL(r io.Reader) (MatchReport, error) {
	dec := json.NewDecoder(bufio.NewReader(r))
	var out MatchReport
	for {
		var c MatchCandidate
		if err := dec.Decode(&c); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, c)
	}
}
