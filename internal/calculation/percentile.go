package calculation

import (
	"fmt"
	"math"
)

// PercentileMethod selects how a percentile is read from sorted samples.
type PercentileMethod string

const (
	// PercentileNearestRank reads sorted[floor(n*p/100)], clamped to the last
	// index. For 1000 samples p5 is index 50 and p95 index 950.
	PercentileNearestRank PercentileMethod = "nearest-rank"
	// PercentileLinear interpolates between the two samples around (n-1)*p/100.
	PercentileLinear PercentileMethod = "linear"
)

// ParsePercentileMethod accepts "nearest-rank", "linear", or empty for the default.
func ParsePercentileMethod(name string) (PercentileMethod, error) {
	switch PercentileMethod(name) {
	case "", PercentileNearestRank:
		return PercentileNearestRank, nil
	case PercentileLinear:
		return PercentileLinear, nil
	default:
		return "", fmt.Errorf("unknown percentile method %q", name)
	}
}

// percentile reads the pct-th percentile (0-100) from ascending samples.
func percentile(sorted []float64, pct int, method PercentileMethod) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if method == PercentileLinear {
		pos := float64(n-1) * float64(pct) / 100
		lower := int(math.Floor(pos))
		if lower >= n-1 {
			return sorted[n-1]
		}
		frac := pos - float64(lower)
		return sorted[lower] + (sorted[lower+1]-sorted[lower])*frac
	}
	idx := n * pct / 100
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		diff := v - mean
		sq += diff * diff
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
