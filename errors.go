package hnsw

import "fmt"

// ErrInvalidDimension indicates a vector's length does not match the
// index's configured dimension.
type ErrInvalidDimension struct {
	Expected int
	Actual   int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidK indicates a non-positive k was passed to Search.
type ErrInvalidK struct {
	K int
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("invalid k: %d (must be >= 1)", e.K)
}

// ErrInvalidThreads indicates a non-positive thread count was passed to
// InsertBatch.
type ErrInvalidThreads struct {
	Threads int
}

func (e *ErrInvalidThreads) Error() string {
	return fmt.Sprintf("invalid threads: %d (must be >= 1)", e.Threads)
}

// ErrEmptyVector indicates a zero-length vector was passed where a
// vector of the index's configured dimension was required.
var ErrEmptyVector = fmt.Errorf("vector cannot be empty")
