package graph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsDenseIDs(t *testing.T) {
	g := New()
	for i := 0; i < 5; i++ {
		id := g.Append([]float32{float32(i)}, 0)
		assert.Equal(t, uint32(i), id)
	}
	assert.Equal(t, 5, g.Len())
}

func TestAppendCopiesVector(t *testing.T) {
	g := New()
	vec := []float32{1, 2, 3}
	id := g.Append(vec, 0)
	vec[0] = 99
	assert.Equal(t, float32(1), g.At(id).Vec[0], "graph must not retain the caller's buffer")
}

func TestRegisterFirstNodeBecomesEntryPoint(t *testing.T) {
	g := New()
	id, _, _, wasEmpty := g.Register([]float32{1, 2}, 3)
	require.True(t, wasEmpty)

	ep, has := g.EntryPoint()
	require.True(t, has)
	assert.Equal(t, id, ep)
	assert.Equal(t, 3, g.MaxLevel())
}

func TestRegisterSubsequentNodeDoesNotPromote(t *testing.T) {
	g := New()
	first, _, _, _ := g.Register([]float32{1}, 5)

	_, entryBefore, maxBefore, wasEmpty := g.Register([]float32{2}, 2)
	assert.False(t, wasEmpty)
	assert.Equal(t, first, entryBefore)
	assert.Equal(t, 5, maxBefore)

	// Registration never promotes on its own when the graph is non-empty;
	// that is the crown-update phase's job.
	ep, _ := g.EntryPoint()
	assert.Equal(t, first, ep)
	assert.Equal(t, 5, g.MaxLevel())
}

func TestNeighborsOutOfRangeLayerReturnsNil(t *testing.T) {
	g := New()
	id := g.Append([]float32{1}, 0)
	assert.Nil(t, g.At(id).Neighbors(1))
}

func TestReplaceAndReadNeighborsIsASnapshot(t *testing.T) {
	g := New()
	id := g.Append([]float32{1}, 0)
	n := g.At(id)

	n.ReplaceNeighbors(0, []uint32{1, 2, 3})
	got := n.Neighbors(0)
	require.Equal(t, []uint32{1, 2, 3}, got)

	got[0] = 99
	assert.Equal(t, []uint32{1, 2, 3}, n.Neighbors(0), "Neighbors must return a copy, not a live view")
}

func TestAppendNeighborGrowsList(t *testing.T) {
	g := New()
	id := g.Append([]float32{1}, 0)
	n := g.At(id)

	n.ReplaceNeighbors(0, []uint32{1})
	length := n.AppendNeighbor(0, 2)
	assert.Equal(t, 2, length)
	assert.Equal(t, []uint32{1, 2}, n.Neighbors(0))
}

func TestPromoteIfHigher(t *testing.T) {
	g := New()
	id, _, _, _ := g.Register([]float32{1}, 0)

	promoted := g.PromoteIfHigher(id, 0)
	assert.False(t, promoted, "equal level must not promote")

	second := g.Append([]float32{2}, 4)
	promoted = g.PromoteIfHigher(second, 4)
	assert.True(t, promoted)
	assert.Equal(t, 4, g.MaxLevel())
	ep, _ := g.EntryPoint()
	assert.Equal(t, second, ep)
}

func TestConcurrentAppendProducesDenseUniqueIDs(t *testing.T) {
	g := New()
	const n = 500

	var wg sync.WaitGroup
	ids := make([]uint32, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = g.Append([]float32{float32(i)}, 0)
		}(i)
	}
	wg.Wait()

	seen := make(map[uint32]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id assigned")
		seen[id] = true
		assert.Less(t, id, uint32(n))
	}
	assert.Equal(t, n, g.Len())
}

func TestConcurrentNeighborWritesAreSerialized(t *testing.T) {
	g := New()
	id := g.Append([]float32{1}, 0)
	n := g.At(id)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i uint32) {
			defer wg.Done()
			n.AppendNeighbor(0, i)
		}(uint32(i))
	}
	wg.Wait()

	assert.Equal(t, 100, len(n.Neighbors(0)))
}
