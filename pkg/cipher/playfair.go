package cipher

import (
	"strings"

	"github.com/vaultenv/cipherlab/pkg/alphabet"
)

const (
	squareSize = 5

	// playfairFiller splits doubled letters and completes an odd tail
	playfairFiller = 'X'

	// playfairAltFiller is used when the letter being split is the filler itself
	playfairAltFiller = 'Q'
)

type squarePos struct {
	row, col int
}

// KeySquare is the 5x5 Playfair grid. It holds the 25 letters A-Z without J,
// keyword letters first in order of first appearance, then the rest of the
// alphabet. A KeySquare is a value: it is never shared or modified after
// NewKeySquare returns.
type KeySquare struct {
	grid [squareSize][squareSize]rune
	pos  [alphabet.Size]squarePos
}

// NewKeySquare builds the key square for keyword
func NewKeySquare(keyword string) (KeySquare, error) {
	cleaned := alphabet.NormalizeDigraph(keyword)
	if cleaned == "" {
		return KeySquare{}, newError(EmptyKey, DigraphSubstitution, "keyword contains no letters")
	}

	var (
		sq   KeySquare
		seen [alphabet.Size]bool
		n    int
	)
	place := func(r rune) {
		idx := alphabet.Index(r)
		if seen[idx] {
			return
		}
		seen[idx] = true
		p := squarePos{row: n / squareSize, col: n % squareSize}
		sq.grid[p.row][p.col] = r
		sq.pos[idx] = p
		n++
	}

	for _, r := range cleaned {
		place(r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		if r != 'J' {
			place(r)
		}
	}
	return sq, nil
}

// At returns the letter in the given cell
func (s KeySquare) At(row, col int) rune {
	return s.grid[alphabet.Mod(row, squareSize)][alphabet.Mod(col, squareSize)]
}

// Locate returns the cell holding letter r. J is located as I.
func (s KeySquare) Locate(r rune) (row, col int) {
	if r == 'J' || r == 'j' {
		r = 'I'
	}
	p := s.pos[alphabet.Index(r)]
	return p.row, p.col
}

// Rows returns the grid as five strings
func (s KeySquare) Rows() []string {
	rows := make([]string, squareSize)
	for i := range s.grid {
		rows[i] = string(s.grid[i][:])
	}
	return rows
}

func (s KeySquare) String() string {
	return strings.Join(s.Rows(), "\n")
}

// Playfair substitutes letter pairs using a key square.
//
// Like Hill, Playfair only sees normalized text (letters, upper case, J
// folded into I), and encryption may insert filler letters, so a round trip
// yields the prepared plaintext.
type Playfair struct {
	key PassphraseKey
}

// NewPlayfair creates a Playfair cipher for key
func NewPlayfair(key PassphraseKey) (*Playfair, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	return &Playfair{key: key}, nil
}

// Encrypt prepares text into digraphs and substitutes each pair
func (p *Playfair) Encrypt(text string) (string, error) {
	return p.transform(PreparePlayfair(text), 1)
}

// Decrypt pairs up the ciphertext as-is and reverses the substitution.
// Encrypt never produces an odd number of letters; odd input gets a
// trailing X so the last letter still forms a digraph.
func (p *Playfair) Decrypt(text string) (string, error) {
	letters := alphabet.NormalizeDigraph(text)
	if len(letters)%2 != 0 {
		letters += string(playfairFiller)
	}
	return p.transform(letters, -1)
}

func (p *Playfair) transform(letters string, step int) (string, error) {
	if letters == "" {
		return "", newError(EmptyText, DigraphSubstitution, "text contains no letters")
	}

	// Built per call; KeySquare values are never cached
	sq, err := NewKeySquare(p.key.phrase)
	if err != nil {
		return "", err
	}

	out := make([]rune, 0, len(letters))
	for i := 0; i < len(letters); i += 2 {
		r1, c1 := sq.Locate(rune(letters[i]))
		r2, c2 := sq.Locate(rune(letters[i+1]))

		switch {
		case r1 == r2:
			out = append(out, sq.At(r1, c1+step), sq.At(r2, c2+step))
		case c1 == c2:
			out = append(out, sq.At(r1+step, c1), sq.At(r2+step, c2))
		default:
			out = append(out, sq.At(r1, c2), sq.At(r2, c1))
		}
	}
	return string(out), nil
}

// PreparePlayfair normalizes text and splits it into digraphs, joined back
// into one string. A filler is inserted between two identical letters that
// would share a pair, and appended when one letter is left over.
func PreparePlayfair(text string) string {
	letters := []rune(alphabet.NormalizeDigraph(text))

	out := make([]rune, 0, len(letters)+len(letters)/2+1)
	for i := 0; i < len(letters); {
		a := letters[i]
		if i+1 == len(letters) || letters[i+1] == a {
			out = append(out, a, fillerFor(a))
			i++
			continue
		}
		out = append(out, a, letters[i+1])
		i += 2
	}
	return string(out)
}

func fillerFor(r rune) rune {
	if r == playfairFiller {
		return playfairAltFiller
	}
	return playfairFiller
}
