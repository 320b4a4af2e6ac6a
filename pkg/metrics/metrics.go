// Package metrics measures how random cipher output looks.
//
// Both measures work on any text and do not care which cipher produced it.
package metrics

import "math"

// MaxBitsPerSymbol is the reference used to express entropy as a percentage
const MaxBitsPerSymbol = 8.0

// Sample pairs the two measures for one ciphertext
type Sample struct {
	EntropyBits      float64 `json:"entropy_bits" yaml:"entropy_bits"`
	AvalanchePercent float64 `json:"avalanche_percent" yaml:"avalanche_percent"`
}

// Entropy returns the Shannon entropy of text in bits per symbol, computed
// over the symbols that actually occur. Empty text has zero entropy.
func Entropy(text string) float64 {
	freq := make(map[rune]int)
	total := 0
	for _, r := range text {
		freq[r]++
		total++
	}
	if total == 0 {
		return 0
	}

	// H(X) = -Σ p(x) log₂ p(x)
	entropy := 0.0
	for _, count := range freq {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// MaxEntropy is the upper bound of Entropy for text: log₂ of the number of
// distinct symbols
func MaxEntropy(text string) float64 {
	distinct := make(map[rune]struct{})
	for _, r := range text {
		distinct[r] = struct{}{}
	}
	if len(distinct) == 0 {
		return 0
	}
	return math.Log2(float64(len(distinct)))
}

// Avalanche returns the percentage of positions at which a and b differ.
// Texts of different lengths are not comparable and yield 0, as does a pair
// of empty texts.
func Avalanche(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) || len(ra) == 0 {
		return 0
	}

	differences := 0
	for i := range ra {
		if ra[i] != rb[i] {
			differences++
		}
	}
	return float64(differences) / float64(len(ra)) * 100
}

// Measure computes entropy of output and the avalanche between output and a
// second ciphertext produced from a slightly different input
func Measure(output, other string) Sample {
	return Sample{
		EntropyBits:      Entropy(output),
		AvalanchePercent: Avalanche(output, other),
	}
}

// EntropyPercent expresses bits per symbol as a share of MaxBitsPerSymbol
func EntropyPercent(bits float64) float64 {
	return bits / MaxBitsPerSymbol * 100
}

// Variant returns text with exactly one symbol changed: the first ASCII
// letter moves to the next letter of its case (Z wraps to A). Text without
// letters has the lowest bit of its first symbol flipped. Empty text is
// returned as is.
func Variant(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z':
			runes[i] = 'a' + (r-'a'+1)%26
			return string(runes)
		case r >= 'A' && r <= 'Z':
			runes[i] = 'A' + (r-'A'+1)%26
			return string(runes)
		}
	}
	if len(runes) == 0 {
		return text
	}
	runes[0] ^= 1
	return string(runes)
}
