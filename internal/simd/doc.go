// Package simd provides the squared-L2 distance kernel used by the graph
// index. When the target CPU reports the features below, an
// accumulator-unrolled kernel is selected; otherwise a plain scalar loop
// is used. Every kernel is portable Go: the package contains no assembly
// and no SIMD intrinsics.
//
// # Platforms with an unrolled kernel
//
//   - ARM64 with NEON (ASIMD): four partial sums
//   - x86-64 with AVX2 + FMA: eight partial sums
//
// Runtime CPU feature detection (via golang.org/x/sys/cpu) selects the
// implementation once, at init time. Set HNSW_SIMD=generic to force the
// scalar fallback regardless of what the CPU supports.
//
// Dispatch happens by swapping a package-level function pointer — callers
// pay zero overhead beyond an indirect call.
package simd
