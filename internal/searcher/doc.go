// Package searcher provides the pooled beam-search scratch space used by
// graph traversal: a visitation set and the two priority queues (the
// exploration frontier and the capped result set) that a single-layer
// beam search needs.
//
// A Scratch is not safe for concurrent use; callers Get one from the
// pool, use it for exactly one beam search, and Put it back.
package searcher
