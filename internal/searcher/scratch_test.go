package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsClearedScratch(t *testing.T) {
	s := Get()
	defer Put(s)

	assert.Equal(t, 0, s.Results.Len())
	assert.Equal(t, 0, s.Frontier.Len())
	require.NotNil(t, s.Visited)
}

func TestScratchRoundTripThroughPool(t *testing.T) {
	s := Get()
	s.Frontier.PushItem(Item{Node: 1, Distance: 1.0})
	s.Results.PushItem(Item{Node: 2, Distance: 2.0})
	s.Visited.Begin()
	s.Visited.Visit(7)
	Put(s)

	reused := Get()
	assert.Equal(t, 0, reused.Results.Len())
	assert.Equal(t, 0, reused.Frontier.Len())
	Put(reused)
}

func TestScratchVisitedClearedByBegin(t *testing.T) {
	s := Get()
	defer Put(s)

	s.Visited.Begin()
	s.Visited.Visit(3)
	require.True(t, s.Visited.Visited(3))

	s.Visited.Begin()
	assert.False(t, s.Visited.Visited(3), "a fresh traversal must not see marks from the previous one")
}

func TestScratchFrontierIsMinHeapAndResultsIsMaxHeap(t *testing.T) {
	s := Get()
	defer Put(s)

	s.Frontier.PushItem(Item{Node: 1, Distance: 10})
	s.Frontier.PushItem(Item{Node: 2, Distance: 1})
	top, ok := s.Frontier.TopItem()
	require.True(t, ok)
	assert.Equal(t, float32(1), top.Distance)

	s.Results.PushItem(Item{Node: 1, Distance: 10})
	s.Results.PushItem(Item{Node: 2, Distance: 1})
	top, ok = s.Results.TopItem()
	require.True(t, ok)
	assert.Equal(t, float32(10), top.Distance)
}
