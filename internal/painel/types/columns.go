package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeColumn applies the single column-name convention: NBSP becomes a
// space, whitespace runs collapse, the result is trimmed and lower-cased.
func NormalizeColumn(name string) string {
	name = strings.ReplaceAll(name, "\u00a0", " ")
	name = strings.Join(strings.Fields(name), " ")
	return cases.Lower(language.BrazilianPortuguese).String(name)
}

// FoldColumn is NormalizeColumn with diacritics removed, used for lookups.
func FoldColumn(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, NormalizeColumn(name))
	if err != nil {
		return NormalizeColumn(name)
	}
	return folded
}
