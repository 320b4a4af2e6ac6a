// Package alphabet maps the 26 Latin letters onto 0..25 and back.
//
// Every classical cipher in cipherlab works on this model. Callers are
// expected to classify a rune with IsLetter before asking for its index;
// the conversion helpers do not report errors.
package alphabet

import "strings"

// Size is the number of letters in the alphabet
const Size = 26

// IsLetter reports whether r is an ASCII letter (A-Z or a-z)
func IsLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// IsUpper reports whether r is an upper-case ASCII letter
func IsUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Index returns the position of an ASCII letter in the alphabet, ignoring case
func Index(r rune) int {
	if IsUpper(r) {
		return int(r - 'A')
	}
	return int(r - 'a')
}

// Letter returns the letter at position i (reduced mod 26), using the
// case of template
func Letter(i int, template rune) rune {
	i = Mod(i, Size)
	if IsUpper(template) {
		return rune('A' + i)
	}
	return rune('a' + i)
}

// Upper returns the upper-case letter at position i (reduced mod 26)
func Upper(i int) rune {
	return Letter(i, 'A')
}

// Mod returns a mod m in the range [0, m)
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Normalize keeps only letters and upper-cases them
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if IsLetter(r) {
			b.WriteRune(Upper(Index(r)))
		}
	}
	return b.String()
}

// NormalizeDigraph is Normalize with J folded into I, the form used by
// the 25-letter key square
func NormalizeDigraph(text string) string {
	return strings.ReplaceAll(Normalize(text), "J", "I")
}

// IsLetters reports whether s is non-empty and made of letters only
func IsLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsLetter(r) {
			return false
		}
	}
	return true
}
