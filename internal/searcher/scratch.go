package searcher

import (
	"sync"

	"github.com/arborvec/hnsw/internal/visited"
)

// Scratch is a reusable execution context for a single-layer beam
// search. It owns all scratch memory beam search needs, eliminating
// allocation in the steady state.
//
// Scratch is NOT safe for concurrent use — it is owned by exactly one
// goroutine for the duration of one Insert or Search call.
type Scratch struct {
	// Visited tracks nodes already seen (evaluated against the query) in
	// the current traversal.
	Visited *visited.Set

	// Results is a max-heap capped at ef: the current best candidates,
	// worst on top so it can be evicted cheaply.
	Results *PriorityQueue

	// Frontier is a min-heap over candidates still to be expanded,
	// nearest on top.
	Frontier *PriorityQueue
}

var scratchPool = sync.Pool{
	New: func() any {
		return newScratch(1024)
	},
}

func newScratch(capacity int) *Scratch {
	return &Scratch{
		Visited:  visited.New(capacity),
		Results:  NewPriorityQueue(true),
		Frontier: NewPriorityQueue(false),
	}
}

// Get returns a Scratch from the pool, ready for a new traversal.
func Get() *Scratch {
	s := scratchPool.Get().(*Scratch)
	s.reset()
	return s
}

// Put returns s to the pool.
func Put(s *Scratch) {
	scratchPool.Put(s)
}

func (s *Scratch) reset() {
	s.Results.Reset()
	s.Frontier.Reset()
}
