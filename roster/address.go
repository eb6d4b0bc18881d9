package roster

import (
	"strings"
)

// AddressCombinedColumn is the column written by CombineAddresses.
const AddressCombinedColumn = "Address Combined"

// AddressColumns names the source columns of a postal address.
type AddressColumns struct {
	Line1 string `yaml:"line1"`
	Line2 string `yaml:"line2"`
	City  string `yaml:"city"`
	State string `yaml:"state"`
	Zip   string `yaml:"zip"`
}

// DefaultAddressColumns are the column names used in employer exports.
var DefaultAddressColumns = AddressColumns{
	Line1: "ADDRESS_LINE1",
	Line2: "ADDRESS_LINE2",
	City:  "TOWN/CITY",
	State: "ST",
	Zip:   "ZIP",
}

// joinAddressParts joins the present, non-empty parts with single spaces after
// trimming whitespace and trailing commas from each.
func joinAddressParts(parts ...Value) string {
	strs := make([]string, 0, len(parts))
	for _, p := range parts {
		if !p.Valid || p.String == "" {
			continue
		}
		strs = append(strs, strings.TrimRight(strings.TrimSpace(p.String), ","))
	}
	return strings.Join(strs, " ")
}

// CombineAddress formats "line1 line2, town state zip". The comma is only
// written when both halves are non-empty.
func CombineAddress(line1, line2, town, state, zip Value) string {
	addr := joinAddressParts(line1, line2)
	if tail := joinAddressParts(town, state, zip); tail != "" {
		if addr != "" {
			addr += ", "
		}
		addr += tail
	}
	return addr
}

// CombineAddresses adds the Address Combined column to t.
func CombineAddresses(t *Table, cols AddressColumns) error {
	if err := t.RequireColumns(cols.Line1, cols.Line2, cols.City, cols.State, cols.Zip); err != nil {
		return err
	}
	l1, _ := t.Column(cols.Line1)
	l2, _ := t.Column(cols.Line2)
	city, _ := t.Column(cols.City)
	st, _ := t.Column(cols.State)
	zip, _ := t.Column(cols.Zip)
	out := make([]string, t.Len())
	for i := range out {
		out[i] = CombineAddress(l1[i], l2[i], city[i], st[i], zip[i])
	}
	return t.SetStrings(AddressCombinedColumn, out)
}
