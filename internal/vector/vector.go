// Package vector builds term-frequency vectors over the vocabulary's
// canonical order and computes the cosine angle between them.
package vector

import (
	"math"

	"docsearch/internal/vocab"
	pkgerrors "docsearch/pkg/errors"
)

// Build returns the fixed-length term-frequency vector for the given
// frequency map: component i is the count of vocabulary term i, 0 when
// absent. Terms outside the vocabulary contribute nothing. Pure; shared by
// document and query vectors.
func Build(freq map[string]int, v *vocab.Vocabulary) []float64 {
	vec := make([]float64, v.Size())
	for term, count := range freq {
		if pos, ok := v.Position(term); ok {
			vec[pos] = float64(count)
		}
	}
	return vec
}

// Dot returns the dot product of two equal-length vectors.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// AngleDegrees returns the angle between a and b in degrees. If either
// vector has zero norm the angle is undefined and ErrDegenerateVector is
// returned instead of a NaN.
func AngleDegrees(a, b []float64) (float64, error) {
	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0, pkgerrors.ErrDegenerateVector
	}
	cos := Dot(a, b) / (normA * normB)
	// Counting vectors can push the quotient a hair past ±1; clamp before
	// Acos to keep the result in the real domain.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi, nil
}
