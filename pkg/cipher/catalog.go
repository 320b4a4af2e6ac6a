package cipher

// Info describes a cipher for help screens and the ciphers command
type Info struct {
	Kind           Kind
	Title          string
	Type           string
	Idea           string
	KeyHint        string
	KeyPlaceholder string

	// Lossy is true when decryption returns normalized text instead of
	// the original formatting
	Lossy bool
}

var catalog = map[Kind]Info{
	Shift: {
		Kind:           Shift,
		Title:          "Caesar Cipher",
		Type:           "Classical Cipher",
		Idea:           "Each letter is shifted by a fixed number.",
		KeyHint:        "NUMBER only, 0-25 (e.g. 3)",
		KeyPlaceholder: "5",
	},
	Matrix: {
		Kind:           Matrix,
		Title:          "Hill Cipher",
		Type:           "Classical Cipher",
		Idea:           "Uses matrix multiplication.",
		KeyHint:        "4 NUMBERS forming an invertible 2x2 matrix (e.g. 3 3 2 5)",
		KeyPlaceholder: "5 2 3 3",
		Lossy:          true,
	},
	Polyalphabetic: {
		Kind:           Polyalphabetic,
		Title:          "Vigenère Cipher",
		Type:           "Classical Cipher",
		Idea:           "Uses a word to apply multiple Caesar shifts.",
		KeyHint:        "LETTERS only",
		KeyPlaceholder: "KEY",
	},
	DigraphSubstitution: {
		Kind:           DigraphSubstitution,
		Title:          "Playfair Cipher",
		Type:           "Classical Cipher",
		Idea:           "Encrypts letter pairs using a 5x5 key square.",
		KeyHint:        "WORD or PHRASE",
		KeyPlaceholder: "MONARCHY",
		Lossy:          true,
	},
	BlockCipher: {
		Kind:           BlockCipher,
		Title:          "Block Cipher",
		Type:           "Modern Symmetric Cipher",
		Idea:           "Encrypts fixed-size blocks with a secret key.",
		KeyHint:        "At least 8 characters",
		KeyPlaceholder: "mysecretkey",
	},
}

// Describe returns the catalogue entry for kind
func Describe(kind Kind) (Info, bool) {
	info, ok := catalog[kind]
	return info, ok
}

// Catalog returns every catalogue entry in display order
func Catalog() []Info {
	infos := make([]Info, 0, len(Kinds))
	for _, kind := range Kinds {
		infos = append(infos, catalog[kind])
	}
	return infos
}
