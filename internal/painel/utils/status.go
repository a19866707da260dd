package utils

import (
	"strings"

	"github.com/farxc/painel-seguros/internal/painel/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanText replaces NBSP with spaces, collapses whitespace runs, trims and
// lower-cases.
func CleanText(raw string) string {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return cases.Lower(language.BrazilianPortuguese).String(s)
}

// NormalizeStatus maps free-text status to a canonical label. Rule order
// matters: "pend" is checked before "renov"/"ok". Unmatched values pass
// through cleaned.
func NormalizeStatus(raw string) string {
	s := CleanText(raw)

	switch {
	case strings.Contains(s, "pend"):
		return types.StatusPending
	case strings.Contains(s, "renov"), s == "ok":
		return types.StatusRenewed
	}
	return s
}
