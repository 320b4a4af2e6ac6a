package cipher

import (
	"github.com/vaultenv/cipherlab/pkg/alphabet"
)

// hillPad completes an odd-length message
const hillPad = 'X'

// Hill multiplies letter pairs by a 2x2 matrix mod 26.
//
// Input is normalized first: non-letters are dropped, letters upper-cased and
// an X appended when the length is odd. Decrypt therefore returns the
// normalized, padded plaintext rather than the original formatting.
type Hill struct {
	key MatrixKey
}

// NewHill creates a Hill cipher. The key must be invertible mod 26.
func NewHill(key MatrixKey) (*Hill, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	return &Hill{key: key}, nil
}

// Encrypt applies the key matrix to each digraph
func (h *Hill) Encrypt(text string) (string, error) {
	return h.apply(text, h.key.m)
}

// Decrypt applies the inverse key matrix to each digraph
func (h *Hill) Decrypt(text string) (string, error) {
	return h.apply(text, h.key.Inverse())
}

func (h *Hill) apply(text string, m [4]int) (string, error) {
	letters := PrepareHill(text)
	if letters == "" {
		return "", newError(EmptyText, Matrix, "text contains no letters")
	}

	out := make([]rune, 0, len(letters))
	for i := 0; i < len(letters); i += 2 {
		x := alphabet.Index(rune(letters[i]))
		y := alphabet.Index(rune(letters[i+1]))
		out = append(out,
			alphabet.Upper(m[0]*x+m[1]*y),
			alphabet.Upper(m[2]*x+m[3]*y),
		)
	}
	return string(out), nil
}

// PrepareHill normalizes text the way the Hill cipher sees it
func PrepareHill(text string) string {
	letters := alphabet.Normalize(text)
	if len(letters)%2 != 0 {
		letters += string(hillPad)
	}
	return letters
}
