// Package header builds the provenance identifiers written on extracted
// records.
//
// The identifier carries the optional species tag, the hit e-value and the
// name the sequence store gave the extracted range:
//
//	chr1/100-171:E1e-7          (no species tag)
//	Sp001:E1e-7:chr1/100-171    (species tag "Sp001")
//
// Fields are joined with ':' so downstream tools can split them back apart.
package header

import (
	"strconv"
	"strings"
)

// Rewrite returns the identifier for a record called name that came from a
// hit with e-value evalue. species may be empty.
func Rewrite(species string, evalue float64, name string) string {
	e := "E" + FormatEValue(evalue)
	if species == "" {
		return name + ":" + e
	}
	return species + ":" + e + ":" + name
}

// FormatEValue renders v in the shortest scientific form that round-trips,
// with an unpadded exponent and no '+' sign: 1e-7, 2.5e-12, 0e0, 3e2.
func FormatEValue(v float64) string {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s // Inf, NaN
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "e" + exp
}
