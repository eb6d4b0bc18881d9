package roster

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
)

func sampleReport(t *testing.T) MatchReport {
	t.Helper()
	r, err := FindMatches(Strs("Doe, Jane", "Smithe, Jon", "Roe, Jane"), Strs("doe, jane", "Smith, John", "Smith, John A.", "Moe, Jane"), 0.75)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(r) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(r))
	}
	return r
}

func TestReportCSVRoundTrip(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	if err := WriteReportCSV(&buf, r); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "name,match_type,similarity,existing_matches,edit_distance\n") {
		t.Fatalf("unexpected header: %q", buf.String())
	}
	back, err := ReadReportCSV(&buf)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !reflect.DeepEqual(back, r) {
		t.Fatalf("csv round trip mismatch:\n%#v\n%#v", back, r)
	}
}

func TestReportJSONLAndMsgpack(t *testing.T) {
	r := sampleReport(t)
	var jb bytes.Buffer
	if err := WriteReportJSONL(&jb, r); err != nil {
		t.Fatalf("write jsonl: %v", err)
	}
	if !strings.Contains(jb.String(), `"existing_matches":["doe, jane"]`) {
		t.Fatalf("unexpected jsonl: %s", jb.String())
	}
	back, err := ReadReportJSONL(&jb)
	if err != nil || !reflect.DeepEqual(back, r) {
		t.Fatalf("jsonl round trip: %v", err)
	}

	var mb bytes.Buffer
	if err := WriteReportMsgpack(&mb, r); err != nil {
		t.Fatalf("write msgpack: %v", err)
	}
	back, err = ReadReportMsgpack(&mb)
	if err != nil || !reflect.DeepEqual(back, r) {
		t.Fatalf("msgpack round trip: %v %#v", err, back)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport(t), true)
	out := buf.String()
	if !strings.HasPrefix(out, "Found 3 potential matches") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "smith, john; smith, john a.") {
		t.Fatalf("matches not listed: %q", out)
	}
}

func TestNewMatchReportStable(t *testing.T) {
	in := []MatchCandidate{
		{Name: "a", Similarity: 0.8},
		{Name: "b", Similarity: 1},
		{Name: "c", Similarity: 0.8},
	}
	r := NewMatchReport(in)
	if r[0].Name != "b" || r[1].Name != "a" || r[2].Name != "c" {
		t.Fatalf("unexpected order: %#v", r)
	}
	if in[0].Name != "a" {
		t.Fatalf("input must not be reordered")
	}
}

func TestPrintReportLeavesGlobalColorAlone(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	var buf bytes.Buffer
	PrintReport(&buf, sampleReport(t), true)
	if color.NoColor {
		t.Fatalf("PrintReport changed the package-wide color setting")
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("escape codes written with colors disabled: %q", buf.String())
	}
}

func TestPrintReportAlignsAccentedNames(t *testing.T) {
	r := MatchReport{
		{Name: "núñez, josé", MatchType: MatchExact, Similarity: 1, Matches: []string{"núñez, josé"}},
		{Name: "doe, jane", MatchType: MatchFuzzy, Similarity: 0.9, Matches: []string{"doe, janet"}},
	}
	var buf bytes.Buffer
	PrintReport(&buf, r, true)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	col := func(line, token string) int {
		i := strings.Index(line, token)
		if i < 0 {
			t.Fatalf("%q not in %q", token, line)
		}
		return utf8.RuneCountInString(line[:i])
	}
	if a, b := col(lines[2], "exact"), col(lines[3], "fuzzy"); a != b {
		t.Fatalf("type column misaligned: %d vs %d\n%s", a, b, buf.String())
	}
}
