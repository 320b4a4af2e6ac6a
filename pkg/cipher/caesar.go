package cipher

import (
	"strings"

	"github.com/vaultenv/cipherlab/pkg/alphabet"
)

// Caesar shifts every letter by a fixed amount. Non-letters are copied
// through, so decrypting an encryption reproduces the input exactly.
type Caesar struct {
	key ShiftKey
}

// NewCaesar creates a Caesar cipher for key
func NewCaesar(key ShiftKey) (*Caesar, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	return &Caesar{key: key}, nil
}

// Encrypt shifts letters forward
func (c *Caesar) Encrypt(text string) (string, error) {
	return shiftLetters(text, c.key.shift), nil
}

// Decrypt shifts letters back
func (c *Caesar) Decrypt(text string) (string, error) {
	return shiftLetters(text, alphabet.Size-(c.key.shift%alphabet.Size)), nil
}

func shiftLetters(text string, shift int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if alphabet.IsLetter(r) {
			r = alphabet.Letter(alphabet.Index(r)+shift, r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
