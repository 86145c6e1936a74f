// Package choice collects the discrete-choice numerics shared by the
// location-choice engine and the auto-ownership model: ordered-logit CDFs,
// threshold monotonization, K-factor weighted category probabilities and the
// cumulative-walk sampler.
package choice

import "math"

// LogitCDF is the ordered-logit cumulative probability 1 / (1 + exp(-(t - v))):
// the chance that an alternative with utility v falls below threshold t.
func LogitCDF(v, t float64) float64 {
	return 1 / (1 + math.Exp(-(t - v)))
}

// Monotonize enforces t[k] = max(t[k], t[k-1]) in place, so the thresholds
// describe a valid non-decreasing CDF even under inverted offsets.
func Monotonize(t []float64) {
	for k := 1; k < len(t); k++ {
		if t[k] < t[k-1] {
			t[k] = t[k-1]
		}
	}
}

// OrderedProbabilities fills out (len(t)+1 categories) with the successive
// CDF differences of utility v over thresholds t, scales each by k[i] (nil k
// means 1 everywhere) and renormalizes. It returns the pre-normalization sum;
// when that sum is not positive out is left unnormalized.
//
// t must already be monotone.
func OrderedProbabilities(v float64, t, k, out []float64) float64 {
	m := len(t)
	prev := 0.0
	for i := 0; i < m; i++ {
		cdf := LogitCDF(v, t[i])
		out[i] = cdf - prev
		prev = cdf
	}
	out[m] = 1 - prev

	total := 0.0
	for i := 0; i <= m; i++ {
		if k != nil {
			out[i] *= k[i]
		}
		total += out[i]
	}
	if total > 0 {
		inv := 1 / total
		for i := 0; i <= m; i++ {
			out[i] *= inv
		}
	}
	return total
}

// Sample walks weights accumulating partial sums and returns the first index
// whose cumulative sum reaches u·total. Zero weights are never returned, so
// u == 0 selects the first positive weight rather than index 0. Rounding can
// make the walk fall through; the fallback is the first index with positive
// weight. ok is false when total <= 0 or no weight is positive.
//
// u is a uniform draw in [0, 1).
func Sample(weights []float64, total, u float64) (int, bool) {
	if !(total > 0) {
		return -1, false
	}
	pop := u * total
	current := 0.0
	for i, w := range weights {
		current += w
		if pop <= current && w > 0 {
			return i, true
		}
	}
	for i, w := range weights {
		if w > 0 {
			return i, true
		}
	}
	return -1, false
}
