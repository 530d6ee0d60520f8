package engine

import (
	"math"
	"math/rand"
)

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func logit(p float64) float64 {
	p = clampF(p, 1e-6, 1-1e-6)
	return math.Log(p / (1 - p))
}

// clampMultLog bounds a multiplier product in log-space, then tightens the
// band by alpha (alpha 0 collapses to 1, alpha 1 keeps the published bounds).
func clampMultLog(m, lo, hi, alpha float64) float64 {
	if m <= 0 {
		m = 1e-6
	}
	lm := clampF(math.Log(m), math.Log(lo), math.Log(hi))
	return math.Exp(lm * clampF(alpha, 0, 1))
}

// sampleIndex draws from non-negative weights; uniform fallback when the
// weight mass is degenerate.
func sampleIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

// softmax3 normalizes three raw scores into probabilities.
func softmax3(a, b, c float64) (float64, float64, float64) {
	max := math.Max(a, math.Max(b, c))
	ea := math.Exp(a - max)
	eb := math.Exp(b - max)
	ec := math.Exp(c - max)
	sum := ea + eb + ec
	return ea / sum, eb / sum, ec / sum
}
