// Package similarity scores chunk vectors against a query vector and applies
// the rank boosts layered on top of raw cosine similarity.
package similarity

import (
	"fmt"
	"math"

	"portfoliorag/internal/domain"
)

// Cosine returns the cosine similarity of a and b clamped to [0,1].
// A zero-magnitude vector scores 0. Vectors of different lengths are a
// configuration error and yield domain.ErrDimensionMismatch.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return clamp(dot/(math.Sqrt(normA)*math.Sqrt(normB)), 0, 1), nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
