package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldName reduces a place or person name to its comparison form: case
// folded, combining marks stripped, runs of spaces collapsed. ł has no
// canonical decomposition and is mapped to l by hand.
func FoldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Map(func(r rune) rune {
		switch r {
		case 'ł', 'Ł':
			return 'l'
		}
		return r
	}, out)
	return strings.Join(strings.Fields(cases.Fold().String(out)), " ")
}
