package quiz

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Similarity scores two strings as a percentage in [0,100] using Levenshtein
// distance over their normalized forms: (1 - distance/maxLen) * 100. Two
// strings that normalize to empty are defined as an exact match (100) so the
// scorer never divides by zero.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return 100
	}
	return strutil.Similarity(na, nb, metrics.NewLevenshtein()) * 100
}

// Band classifies a similarity percentage into a discrete closeness tier
// (1..5). Tiers map to increasingly encouraging feedback strings.
func Band(pct float64) int {
	switch {
	case pct > 90:
		return 5
	case pct > 80:
		return 4
	case pct > 70:
		return 3
	case pct > 50:
		return 2
	default:
		return 1
	}
}
