package roster

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"abc", "", 0.0},
		{"abcd", "bcde", 0.75},
		{"smithe, jon", "smith, john a.", 0.8},
		{"smyth, john", "smith, john", 20.0 / 22.0},
		{"doe, jane", "doe, jane m.", 18.0 / 21.0},
		{"zed, nobody", "alpha, somebody", 14.0 / 26.0},
	}
	for _, c := range cases {
		if got := Ratio(c.a, c.b); !almostEqual(got, c.want) {
			t.Fatalf("Ratio(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestRatioRunes(t *testing.T) {
	// one rune differs out of four on each side
	if got := Ratio("josé", "jose"); !almostEqual(got, 0.75) {
		t.Fatalf("ratio over runes: %v", got)
	}
}

func TestRatioLongInputPopularRunes(t *testing.T) {
	a := strings.Repeat("a", 300)
	b := strings.Repeat("a", 300)
	if got := Ratio(a, b); !almostEqual(got, 1.0) {
		t.Fatalf("identical long strings: %v", got)
	}
}

func TestRatioBoundHolds(t *testing.T) {
	pairs := [][2]string{{"abcd", "bcde"}, {"doe, jane", "doe, jane m."}, {"x", "xxxxxxxxxx"}}
	for _, p := range pairs {
		la, lb := len([]rune(p[0])), len([]rune(p[1]))
		if Ratio(p[0], p[1]) > ratioBound(la, lb) {
			t.Fatalf("bound exceeded for %q %q", p[0], p[1])
		}
	}
}
