// Package normalize folds player names and guesses into a canonical
// comparable form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and removes the combining
// marks, so "Peña" folds to "Pena".
//
//nolint:gochecknoglobals // Static transformer chain, safe for concurrent use
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name reduces a name to its comparable form: diacritics folded away,
// case ignored, and everything that is not a letter dropped. "J.T.
// Realmuto" and "jt realmuto" both come out as "jtrealmuto".
func Name(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Equal reports whether a guess matches a name under Name folding.
// Empty input never matches anything.
func Equal(guess, name string) bool {
	g := Name(guess)
	return g != "" && g == Name(name)
}
