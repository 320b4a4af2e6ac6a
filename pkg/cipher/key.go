package cipher

import (
	"strconv"
	"strings"

	"github.com/vaultenv/cipherlab/pkg/alphabet"
)

// MinSymmetricKeyLength is the shortest key accepted by the block cipher adapter
const MinSymmetricKeyLength = 8

// Key is a validated key for exactly one cipher kind. The set of
// implementations is closed: ShiftKey, MatrixKey, KeywordKey, PassphraseKey
// and SymmetricKey.
type Key interface {
	// Kind returns the cipher this key belongs to
	Kind() Kind

	// validate re-checks the key invariants so a zero value built outside
	// the constructors never reaches a transform
	validate() error
}

// ShiftKey is a Caesar shift in [0, 25]
type ShiftKey struct {
	shift int
}

// NewShiftKey validates a Caesar shift
func NewShiftKey(shift int) (ShiftKey, error) {
	k := ShiftKey{shift: shift}
	if err := k.validate(); err != nil {
		return ShiftKey{}, err
	}
	return k, nil
}

func (k ShiftKey) Kind() Kind { return Shift }

// Shift returns the shift amount
func (k ShiftKey) Shift() int { return k.shift }

func (k ShiftKey) validate() error {
	if k.shift < 0 || k.shift >= alphabet.Size {
		return newError(KeyOutOfRange, Shift, "shift %d must be between 0 and 25", k.shift)
	}
	return nil
}

// MatrixKey is a 2x2 Hill matrix [[a, b], [c, d]] that is invertible mod 26
type MatrixKey struct {
	m [4]int
}

// NewMatrixKey validates the matrix [[a, b], [c, d]]. Entries are stored
// reduced mod 26 so the determinant cannot overflow.
func NewMatrixKey(a, b, c, d int) (MatrixKey, error) {
	var k MatrixKey
	for i, v := range [4]int{a, b, c, d} {
		k.m[i] = alphabet.Mod(v, alphabet.Size)
	}
	if err := k.validate(); err != nil {
		return MatrixKey{}, err
	}
	return k, nil
}

func (k MatrixKey) Kind() Kind { return Matrix }

// Values returns the matrix entries, reduced mod 26, in row-major order
func (k MatrixKey) Values() [4]int { return k.m }

// Determinant returns ad - bc of the stored entries, not reduced
func (k MatrixKey) Determinant() int {
	return k.m[0]*k.m[3] - k.m[1]*k.m[2]
}

// Inverse returns the inverse matrix mod 26 in row-major order
func (k MatrixKey) Inverse() [4]int {
	detInv, _ := modInverse(k.Determinant(), alphabet.Size)
	a, b, c, d := k.m[0], k.m[1], k.m[2], k.m[3]
	return [4]int{
		alphabet.Mod(detInv*d, alphabet.Size),
		alphabet.Mod(-detInv*b, alphabet.Size),
		alphabet.Mod(-detInv*c, alphabet.Size),
		alphabet.Mod(detInv*a, alphabet.Size),
	}
}

func (k MatrixKey) validate() error {
	det := alphabet.Mod(k.Determinant(), alphabet.Size)
	if _, ok := modInverse(det, alphabet.Size); !ok {
		return newError(NonInvertibleKey, Matrix,
			"determinant %d (%d mod 26) has no inverse mod 26", k.Determinant(), det)
	}
	return nil
}

// modInverse finds x with a*x ≡ 1 (mod m)
func modInverse(a, m int) (int, bool) {
	a = alphabet.Mod(a, m)
	for x := 1; x < m; x++ {
		if (a*x)%m == 1 {
			return x, true
		}
	}
	return 0, false
}

// KeywordKey is a Vigenère keyword made of letters only, stored upper-case
type KeywordKey struct {
	word string
}

// NewKeywordKey validates a Vigenère keyword
func NewKeywordKey(word string) (KeywordKey, error) {
	k := KeywordKey{word: strings.ToUpper(word)}
	if err := k.validate(); err != nil {
		return KeywordKey{}, err
	}
	return k, nil
}

func (k KeywordKey) Kind() Kind { return Polyalphabetic }

// Word returns the upper-cased keyword
func (k KeywordKey) Word() string { return k.word }

func (k KeywordKey) validate() error {
	if k.word == "" {
		return newError(EmptyKey, Polyalphabetic, "keyword is required")
	}
	if !alphabet.IsLetters(k.word) {
		return newError(InvalidKeyFormat, Polyalphabetic, "keyword must contain letters only")
	}
	return nil
}

// PassphraseKey is a Playfair keyword. Any characters are accepted, but at
// least one letter must survive normalization.
type PassphraseKey struct {
	phrase string
}

// NewPassphraseKey validates a Playfair passphrase
func NewPassphraseKey(phrase string) (PassphraseKey, error) {
	k := PassphraseKey{phrase: phrase}
	if err := k.validate(); err != nil {
		return PassphraseKey{}, err
	}
	return k, nil
}

func (k PassphraseKey) Kind() Kind { return DigraphSubstitution }

// Phrase returns the passphrase as given
func (k PassphraseKey) Phrase() string { return k.phrase }

func (k PassphraseKey) validate() error {
	if strings.TrimSpace(k.phrase) == "" {
		return newError(EmptyKey, DigraphSubstitution, "keyword is required")
	}
	if alphabet.Normalize(k.phrase) == "" {
		return newError(EmptyKey, DigraphSubstitution, "keyword contains no letters")
	}
	return nil
}

// SymmetricKey is the secret handed to the block cipher provider
type SymmetricKey struct {
	secret []byte
}

// NewSymmetricKey validates a block cipher key
func NewSymmetricKey(secret string) (SymmetricKey, error) {
	k := SymmetricKey{secret: []byte(secret)}
	if err := k.validate(); err != nil {
		return SymmetricKey{}, err
	}
	return k, nil
}

func (k SymmetricKey) Kind() Kind { return BlockCipher }

// Bytes returns a copy of the key material
func (k SymmetricKey) Bytes() []byte {
	return append([]byte(nil), k.secret...)
}

func (k SymmetricKey) validate() error {
	if len(k.secret) == 0 {
		return newError(EmptyKey, BlockCipher, "key is required")
	}
	if len(k.secret) < MinSymmetricKeyLength {
		return newError(KeyTooShort, BlockCipher,
			"key has %d bytes, need at least %d", len(k.secret), MinSymmetricKeyLength)
	}
	return nil
}

// ParseKey turns the textual key a user typed into a validated key for kind.
//
//	caesar    "3"
//	hill      "5 2 3 3" (or comma separated)
//	vigenere  "LEMON"
//	playfair  "MONARCHY"
//	block     "mysecretkey"
func ParseKey(kind Kind, raw string) (Key, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, newError(EmptyKey, kind, "key is required")
	}

	switch kind {
	case Shift:
		shift, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, newError(InvalidKeyFormat, Shift, "key must be a number, got %q", raw)
		}
		return NewShiftKey(shift)

	case Matrix:
		fields := strings.FieldsFunc(trimmed, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		if len(fields) != 4 {
			return nil, newError(InvalidKeyFormat, Matrix, "key needs exactly 4 numbers, got %d", len(fields))
		}
		var values [4]int
		for i, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, newError(InvalidKeyFormat, Matrix, "%q is not a number", field)
			}
			values[i] = v
		}
		return NewMatrixKey(values[0], values[1], values[2], values[3])

	case Polyalphabetic:
		return NewKeywordKey(trimmed)

	case DigraphSubstitution:
		return NewPassphraseKey(trimmed)

	case BlockCipher:
		// Block keys are secrets: surrounding spaces are significant
		return NewSymmetricKey(raw)

	default:
		return nil, newError(InvalidKeyFormat, 0, "unsupported cipher %s", kind)
	}
}
