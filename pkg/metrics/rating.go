package metrics

// Rating is a coarse strength label
type Rating string

const (
	Strong   Rating = "strong"
	Moderate Rating = "moderate"
	Weak     Rating = "weak"
)

// RateEntropy rates bits per symbol: 70% of MaxBitsPerSymbol is strong,
// 40% moderate
func RateEntropy(bits float64) Rating {
	pct := EntropyPercent(bits)
	switch {
	case pct >= 70:
		return Strong
	case pct >= 40:
		return Moderate
	default:
		return Weak
	}
}

// RateAvalanche rates an avalanche percentage: 80 is strong, 50 moderate
func RateAvalanche(percent float64) Rating {
	switch {
	case percent >= 80:
		return Strong
	case percent >= 50:
		return Moderate
	default:
		return Weak
	}
}
