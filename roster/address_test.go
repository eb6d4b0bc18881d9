package roster

import "testing"

func TestCombineAddress(t *testing.T) {
	cases := []struct {
		parts [5]Value
		want  string
	}{
		{[5]Value{Str("1 Main St,"), Str("Apt 2"), Str("Hanover,"), Str("NH"), Str("03755")}, "1 Main St Apt 2, Hanover NH 03755"},
		{[5]Value{Str("1 Main St"), Null, Null, Null, Null}, "1 Main St"},
		{[5]Value{Null, Null, Str("Hanover"), Null, Str("03755")}, "Hanover 03755"},
		{[5]Value{Null, Null, Null, Null, Null}, ""},
	}
	for _, c := range cases {
		p := c.parts
		if got := CombineAddress(p[0], p[1], p[2], p[3], p[4]); got != c.want {
			t.Fatalf("CombineAddress(%v) = %q, want %q", p, got, c.want)
		}
	}
}

func TestCombineAddresses(t *testing.T) {
	cols := DefaultAddressColumns
	tb := &Table{
		Header: []string{cols.Line1, cols.Line2, cols.City, cols.State, cols.Zip},
		Rows:   [][]Value{{Str("1 Main St"), Null, Str("Hanover"), Str("NH"), Str("03755")}},
	}
	if err := CombineAddresses(tb, cols); err != nil {
		t.Fatalf("combine: %v", err)
	}
	got, _ := tb.Column(AddressCombinedColumn)
	if got[0].String != "1 Main St, Hanover NH 03755" {
		t.Fatalf("unexpected address: %q", got[0].String)
	}
}
