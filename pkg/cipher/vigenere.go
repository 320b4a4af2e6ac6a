package cipher

import (
	"strings"

	"github.com/vaultenv/cipherlab/pkg/alphabet"
)

// Vigenere shifts each letter by the next letter of a repeating keyword.
// Only letters consume keyword positions; everything else passes through.
type Vigenere struct {
	key KeywordKey
}

// NewVigenere creates a Vigenère cipher for key
func NewVigenere(key KeywordKey) (*Vigenere, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	return &Vigenere{key: key}, nil
}

// Encrypt adds the keyword shifts
func (v *Vigenere) Encrypt(text string) (string, error) {
	return v.walk(text, 1), nil
}

// Decrypt subtracts the keyword shifts
func (v *Vigenere) Decrypt(text string) (string, error) {
	return v.walk(text, -1), nil
}

func (v *Vigenere) walk(text string, sign int) string {
	word := v.key.word
	pos := 0

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !alphabet.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		shift := alphabet.Index(rune(word[pos%len(word)]))
		pos++
		b.WriteRune(alphabet.Letter(alphabet.Index(r)+sign*shift+alphabet.Size, r))
	}
	return b.String()
}
