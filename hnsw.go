package hnsw

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arborvec/hnsw/distance"
	"github.com/arborvec/hnsw/internal/graph"
	"github.com/arborvec/hnsw/internal/searcher"
	"golang.org/x/sync/errgroup"
)

// levelCap is the hard upper bound on a node's level: a discrete
// Bernoulli(0.5) trial sequence is capped here so that a catastrophically
// unlucky run of coin flips cannot blow up memory.
const levelCap = 16

// SearchResult is one hit returned by Search: a node identifier and its
// squared-L2 distance to the query.
type SearchResult struct {
	ID       uint32
	Distance float32
}

// Index is a concurrent, in-memory approximate nearest-neighbor index
// over fixed-dimensional float32 vectors under squared L2 distance.
//
// Insert and Search may run concurrently from many goroutines. Deletions
// and updates to existing vectors are not supported: once inserted, a
// vector's identifier, contents, and level never change.
type Index struct {
	dim int
	opts options

	g *graph.Graph

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New constructs an empty index over vectors of the given dimension.
func New(dim int, optFns ...Option) *Index {
	o := applyOptions(optFns)

	var src rand.Source
	if o.hasSeed {
		src = rand.NewSource(o.seed)
	} else {
		src = rand.NewSource(time.Now().UnixNano())
	}

	return &Index{
		dim:  dim,
		opts: o,
		g:    graph.New(),
		rng:  rand.New(src),
	}
}

// Dim returns the index's configured vector dimension.
func (idx *Index) Dim() int { return idx.dim }

// Len returns the number of vectors currently in the index.
func (idx *Index) Len() int { return idx.g.Len() }

func (idx *Index) maxConns(level int) int {
	if level == 0 {
		return 2 * idx.opts.m
	}
	return idx.opts.m
}

// sampleLevel draws the number of successful trials in a sequence of
// independent fair coin flips, capped at levelCap. rng must not be used
// concurrently by more than one caller at a time.
func sampleLevel(rng *rand.Rand) int {
	level := 0
	for level < levelCap && rng.Intn(2) == 1 {
		level++
	}
	return level
}

func (idx *Index) nextLevel() int {
	idx.rngMu.Lock()
	defer idx.rngMu.Unlock()
	return sampleLevel(idx.rng)
}

// Insert adds vec to the index and returns its assigned identifier.
// vec's length must equal the index's configured dimension; vec is
// value-copied and the caller's buffer is not retained.
func (idx *Index) Insert(vec []float32) (uint32, error) {
	if len(vec) == 0 {
		return 0, ErrEmptyVector
	}
	if len(vec) != idx.dim {
		return 0, &ErrInvalidDimension{Expected: idx.dim, Actual: len(vec)}
	}

	start := time.Now()
	id, err := idx.insert(vec, idx.nextLevel())
	idx.opts.metrics.OnInsert(time.Since(start))
	if err == nil {
		idx.opts.logger.LogInsert(context.Background(), id, idx.g.At(id).Level)
	}
	return id, err
}

// insert runs the four-phase single-item insertion path: registration,
// descent, linking, and crown update.
func (idx *Index) insert(vec []float32, level int) (uint32, error) {
	idx.opts.metrics.OnLevelAssigned(level)

	// Phase 1: Registration.
	id, entryPoint, maxLevel, wasEmpty := idx.g.Register(vec, level)
	if wasEmpty {
		return id, nil
	}

	// Phase 2: Descent. Greedily refine the entry point from maxLevel
	// down to level+1, beam width 1.
	currID := entryPoint
	currDist := distance.SquaredL2(vec, idx.g.At(currID).Vec)

	for l := maxLevel; l > level; l-- {
		currID, currDist = idx.greedyStep(vec, currID, currDist, l)
	}

	// Phase 3: Linking. From min(level, maxLevel) down to 0, beam search
	// width ef_construction, install neighbors, prune, reciprocal-link.
	for l := min(level, maxLevel); l >= 0; l-- {
		results := idx.searchLayer(vec, currID, currDist, l, idx.opts.efConstruction)

		neighborCap := idx.maxConns(l)
		selected := selectNeighbors(results, neighborCap, func(n uint32) []float32 {
			return idx.g.At(n).Vec
		})
		searcher.Put(results.scratch)

		if len(selected) > 0 {
			currID = selected[0]
			currDist = distance.SquaredL2(vec, idx.g.At(currID).Vec)
		}

		idx.g.At(id).ReplaceNeighbors(l, selected)

		for _, n := range selected {
			idx.linkReciprocal(n, id, l)
		}
	}

	// Phase 4: Crown update.
	if level > maxLevel {
		idx.g.PromoteIfHigher(id, level)
	}

	return id, nil
}

// greedyStep runs a width-1 beam search at layer l from (currID,
// currDist), returning the nearest node found.
func (idx *Index) greedyStep(query []float32, currID uint32, currDist float32, l int) (uint32, float32) {
	changed := true
	for changed {
		changed = false
		for _, n := range idx.g.At(currID).Neighbors(l) {
			d := distance.SquaredL2(query, idx.g.At(n).Vec)
			if d < currDist {
				currID, currDist = n, d
				changed = true
			}
		}
	}
	return currID, currDist
}

// linkReciprocal installs id as a neighbor of n at layer l under n's
// exclusive lock, pruning n's list back to its cap if the append pushed
// it over.
func (idx *Index) linkReciprocal(n, id uint32, l int) {
	node := idx.g.At(n)
	length := node.AppendNeighbor(l, id)
	neighborCap := idx.maxConns(l)
	if length <= neighborCap {
		return
	}

	neighbors := node.Neighbors(l)
	results := searcher.Get()
	for _, other := range neighbors {
		d := distance.SquaredL2(node.Vec, idx.g.At(other).Vec)
		results.Results.PushItem(searcher.Item{Node: other, Distance: d})
	}
	pruned := selectNeighbors(&layerResults{scratch: results}, neighborCap, func(m uint32) []float32 {
		return idx.g.At(m).Vec
	})
	searcher.Put(results)
	node.ReplaceNeighbors(l, pruned)
}

// layerResults wraps the pooled scratch space produced by a single-layer
// beam search, giving selectNeighbors and the insertion phases a single
// type to drain results from regardless of whether they came from a real
// traversal or a synthetic candidate list built for reciprocal pruning.
type layerResults struct {
	scratch *searcher.Scratch
}

// searchLayer runs a single-layer beam search from (epID, epDist) toward
// query at layer l with beam width ef, per the algorithm in the index
// design: a min-ordered frontier and a max-ordered, ef-capped result set,
// gated by a per-traversal visitation set.
func (idx *Index) searchLayer(query []float32, epID uint32, epDist float32, l int, ef int) *layerResults {
	s := searcher.Get()
	s.Visited.EnsureCapacity(idx.g.Len())
	s.Visited.Begin()

	s.Visited.Visit(epID)
	s.Frontier.PushItem(searcher.Item{Node: epID, Distance: epDist})
	s.Results.PushItem(searcher.Item{Node: epID, Distance: epDist})

	for s.Frontier.Len() > 0 {
		cand, _ := s.Frontier.TopItem()
		if worst, ok := s.Results.TopItem(); ok && s.Results.Len() >= ef && cand.Distance > worst.Distance {
			break
		}
		cand, _ = s.Frontier.PopItem()

		node := idx.g.At(cand.Node)
		for _, n := range node.Neighbors(l) {
			if s.Visited.Visited(n) {
				continue
			}
			s.Visited.Visit(n)

			d := distance.SquaredL2(query, idx.g.At(n).Vec)
			if worst, ok := s.Results.TopItem(); !ok || s.Results.Len() < ef || d < worst.Distance {
				s.Frontier.PushItem(searcher.Item{Node: n, Distance: d})
				s.Results.PushItemBounded(searcher.Item{Node: n, Distance: d}, ef)
			}
		}
	}

	return &layerResults{scratch: s}
}

// selectNeighbors applies the relative-neighbor pruning heuristic to a
// layer's beam search results, returning at most cap identifiers ordered
// nearest-first. vecOf resolves a node identifier to its stored vector.
func selectNeighbors(results *layerResults, neighborCap int, vecOf func(uint32) []float32) []uint32 {
	s := results.scratch

	items := make([]searcher.Item, s.Results.Len())
	for i := len(items) - 1; i >= 0; i-- {
		items[i], _ = s.Results.PopItem() // max-heap pops worst-first; fill back-to-front
	}

	if len(items) <= neighborCap {
		out := make([]uint32, len(items))
		for i, it := range items {
			out[i] = it.Node
		}
		return out
	}

	selected := make([]uint32, 0, neighborCap)
	selectedVecs := make([][]float32, 0, neighborCap)

	for _, cand := range items {
		if len(selected) >= neighborCap {
			break
		}
		candVec := vecOf(cand.Node)

		good := true
		for _, sv := range selectedVecs {
			if distance.SquaredL2(candVec, sv) < cand.Distance {
				good = false
				break
			}
		}
		if good {
			selected = append(selected, cand.Node)
			selectedVecs = append(selectedVecs, candVec)
		}
	}

	return selected
}

// Search returns up to k node identifiers nearest to query in ascending
// distance order. efSearch <= 0 selects the default max(ef_construction,
// k). On an empty index, Search returns an empty, non-nil slice.
func (idx *Index) Search(query []float32, k int, efSearch int) ([]SearchResult, error) {
	if len(query) != idx.dim {
		return nil, &ErrInvalidDimension{Expected: idx.dim, Actual: len(query)}
	}
	if k < 1 {
		return nil, &ErrInvalidK{K: k}
	}

	start := time.Now()
	results := idx.search(query, k, efSearch)
	idx.opts.metrics.OnSearch(time.Since(start), k)
	idx.opts.logger.LogSearch(context.Background(), k, efSearch, len(results))
	return results, nil
}

func (idx *Index) search(query []float32, k int, efSearch int) []SearchResult {
	entryPoint, hasEntry, maxLevel := idx.g.Crown()
	if !hasEntry {
		return []SearchResult{}
	}

	ef := efSearch
	if efSearch > 0 {
		ef = max(efSearch, k)
	} else {
		ef = max(idx.opts.efConstruction, k)
	}

	currID := entryPoint
	currDist := distance.SquaredL2(query, idx.g.At(currID).Vec)

	for l := maxLevel; l > 0; l-- {
		currID, currDist = idx.greedyStep(query, currID, currDist, l)
	}

	layerRes := idx.searchLayer(query, currID, currDist, 0, ef)
	defer searcher.Put(layerRes.scratch)

	items := make([]searcher.Item, layerRes.scratch.Results.Len())
	for i := len(items) - 1; i >= 0; i-- {
		items[i], _ = layerRes.scratch.Results.PopItem()
	}

	if k > len(items) {
		k = len(items)
	}
	out := make([]SearchResult, k)
	for i := 0; i < k; i++ {
		out[i] = SearchResult{ID: items[i].Node, Distance: items[i].Distance}
	}
	return out
}

// InsertBatch inserts vecs using threads worker goroutines. The first
// min(len(vecs), sequentialPrelude) vectors are inserted sequentially to
// let the graph's upper layers form before parallel inserters start
// racing on a sparse crown; the remainder is drained by the worker pool.
// threads == 1 is equivalent to a sequential loop over Insert.
//
// The index has no cancellation semantics of its own: once a vector has
// been handed to insert, it runs to completion. Cancelling ctx only stops
// workers from picking up further, not-yet-started vectors; a batch
// already fully claimed by workers finishes regardless.
func (idx *Index) InsertBatch(ctx context.Context, vecs [][]float32, threads int) ([]uint32, error) {
	if threads < 1 {
		return nil, &ErrInvalidThreads{Threads: threads}
	}
	for _, v := range vecs {
		if len(v) != idx.dim {
			return nil, &ErrInvalidDimension{Expected: idx.dim, Actual: len(v)}
		}
	}

	ids := make([]uint32, len(vecs))

	// Levels are precomputed sequentially, before any worker spawns, so
	// that level sampling does not contend rngMu once parallel inserts
	// begin and so that the same seed reproduces the same level sequence
	// regardless of how many threads later drain the remainder.
	levels := make([]int, len(vecs))
	for i := range levels {
		levels[i] = idx.nextLevel()
	}

	prelude := min(len(vecs), idx.opts.sequentialPrelude)
	for i := 0; i < prelude; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := idx.insert(vecs[i], levels[i])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	if prelude >= len(vecs) {
		idx.opts.logger.LogBatchInsert(ctx, len(vecs), threads)
		return ids, nil
	}

	var next atomic.Int64
	next.Store(int64(prelude))

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				i := next.Add(1) - 1
				if i >= int64(len(vecs)) {
					return nil
				}
				id, err := idx.insert(vecs[i], levels[i])
				if err != nil {
					return err
				}
				ids[i] = id
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx.opts.logger.LogBatchInsert(ctx, len(vecs), threads)
	return ids, nil
}
