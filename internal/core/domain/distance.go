package domain

import (
	"fmt"
	"math"
)

// CosineDistance computes 1 minus the cosine similarity of two vectors.
// The result is 0 for vectors pointing in the same direction and grows
// towards 2 for opposing vectors. Vectors must have equal, non-zero
// length. A zero-magnitude vector has no direction and yields the
// neutral distance 1.
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vectors are empty")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 1, nil
	}

	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)), nil
}
