package searcher

// Item is an entry in a priority queue: a node identifier and its
// distance to the query being traversed.
type Item struct {
	Node     uint32
	Distance float32
}

// PriorityQueue is a binary heap over Items, ordered by Distance.
// Value-based storage (no pointers) keeps it allocation-free on the
// steady-state hot path of beam search. It does not implement
// container/heap, to avoid the interface-dispatch overhead of Push/Pop
// going through an interface value on every call.
type PriorityQueue struct {
	isMaxHeap bool
	items     []Item
}

// NewPriorityQueue creates an empty queue. isMaxHeap selects a max-heap
// (largest distance on top — used for the capped result set) or a
// min-heap (smallest distance on top — used for the exploration
// frontier).
func NewPriorityQueue(isMaxHeap bool) *PriorityQueue {
	return &PriorityQueue{
		isMaxHeap: isMaxHeap,
		items:     make([]Item, 0, 16),
	}
}

// Reset clears the queue for reuse, preserving its backing capacity.
func (pq *PriorityQueue) Reset() {
	pq.items = pq.items[:0]
}

// Len returns the number of elements in the queue.
func (pq *PriorityQueue) Len() int {
	return len(pq.items)
}

// TopItem returns the element at the root of the heap without removing
// it: the nearest candidate for a min-heap, the farthest result for a
// max-heap.
func (pq *PriorityQueue) TopItem() (Item, bool) {
	if len(pq.items) == 0 {
		return Item{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) PushItem(item Item) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PushItemBounded inserts item into a heap capped at capacity entries.
// Used to maintain the result set at beam width ef: once full, a new
// item is kept only if it improves on the current worst, which is then
// evicted.
func (pq *PriorityQueue) PushItemBounded(item Item, capacity int) {
	if len(pq.items) < capacity {
		pq.PushItem(item)
		return
	}

	top, _ := pq.TopItem()
	if pq.isMaxHeap {
		if item.Distance < top.Distance {
			pq.items[0] = item
			pq.siftDown(0)
		}
	} else if item.Distance > top.Distance {
		pq.items[0] = item
		pq.siftDown(0)
	}
}

// PopItem removes and returns the root element.
func (pq *PriorityQueue) PopItem() (Item, bool) {
	n := len(pq.items)
	if n == 0 {
		return Item{}, false
	}

	item := pq.items[0]
	pq.items[0] = pq.items[n-1]
	pq.items = pq.items[:n-1]

	if len(pq.items) > 0 {
		pq.siftDown(0)
	}

	return item, true
}

// Less reports whether the element at i should sort before the element
// at j within this heap's ordering.
func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

func (pq *PriorityQueue) swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *PriorityQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.Less(i, parent) {
			break
		}
		pq.swap(i, parent)
		i = parent
	}
}

func (pq *PriorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		right := left + 1
		if right < n && pq.Less(right, left) {
			child = right
		}
		if !pq.Less(child, i) {
			break
		}
		pq.swap(i, child)
		i = child
	}
}
