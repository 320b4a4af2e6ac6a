// Package cipher implements the classical text ciphers of cipherlab and the
// Engine that dispatches requests to them.
//
// Supported ciphers:
//
//   - Caesar (Shift): one integer key in [0, 25]
//   - Hill (Matrix): a 2x2 key matrix invertible mod 26
//   - Vigenère (Polyalphabetic): a letters-only keyword
//   - Playfair (DigraphSubstitution): a keyword building a 5x5 key square
//   - Block (BlockCipher): delegation to an external BlockProvider
//
// Keys are validated by their constructors (or ParseKey) before any
// transform runs. Failures are *Error values carrying an ErrorKind.
//
// Caesar and Vigenère preserve case and non-letters, so they round-trip
// exactly. Hill and Playfair only operate on normalized letters and pad or
// insert fillers, so decrypting returns the normalized plaintext. This is
// part of their contract, not a defect.
package cipher
