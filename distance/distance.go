// Package distance provides the public API for vector distance
// calculations. SquaredL2 uses the kernel internal/simd selects for the
// target CPU: an unrolled pure-Go loop where NEON or AVX2+FMA is
// reported, a scalar loop otherwise.
package distance

import "github.com/arborvec/hnsw/internal/simd"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// vectors: Σᵢ (aᵢ − bᵢ)². Assumes both slices have equal length (caller's
// responsibility); does not take the square root, since ordering under
// squared distance is identical to ordering under distance.
func SquaredL2(a, b []float32) float32 {
	return simd.SquaredL2(a, b)
}
