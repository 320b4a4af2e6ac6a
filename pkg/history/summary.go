package history

import (
	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/metrics"
)

// Summary aggregates a history log
type Summary struct {
	Total       int                 `json:"total" yaml:"total"`
	Encryptions int                 `json:"encryptions" yaml:"encryptions"`
	Decryptions int                 `json:"decryptions" yaml:"decryptions"`
	PerCipher   map[cipher.Kind]int `json:"per_cipher" yaml:"per_cipher"`

	// Latest measures the most recent encryption of the summarized cipher.
	// AvalanchePercent compares it with the encryption before it and is only
	// meaningful when Compared is set.
	Latest   *metrics.Sample `json:"latest,omitempty" yaml:"latest,omitempty"`
	Compared bool            `json:"compared" yaml:"compared"`
}

// Summarize counts entries and measures the last two encryptions of kind.
// Entries must be oldest first, as returned by Recorder.List.
func Summarize(entries []Entry, kind cipher.Kind) Summary {
	s := Summary{PerCipher: make(map[cipher.Kind]int)}

	var last, prev *Entry
	for i := range entries {
		e := &entries[i]
		s.Total++
		s.PerCipher[e.Cipher]++
		switch e.Direction {
		case cipher.Encrypt:
			s.Encryptions++
			if e.Cipher == kind {
				prev, last = last, e
			}
		case cipher.Decrypt:
			s.Decryptions++
		}
	}

	if last == nil {
		return s
	}

	sample := metrics.Sample{EntropyBits: metrics.Entropy(last.Output)}
	if prev != nil {
		sample.AvalanchePercent = metrics.Avalanche(prev.Output, last.Output)
		s.Compared = true
	}
	s.Latest = &sample
	return s
}
