package models

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EmailKey returns the comparison key used for email uniqueness:
// diacritics are stripped and case is folded, so "José@X.com" and
// "JOSE@x.com" share a key.
func EmailKey(email string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, email)
	if err != nil {
		stripped = email
	}
	return cases.Fold().String(stripped)
}
