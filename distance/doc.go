// Package distance exposes the single metric this index supports:
// squared Euclidean (L2) distance, computed by a pure-Go kernel chosen
// once per process from the CPU's reported features.
//
//	d := distance.SquaredL2(a, b)
package distance
