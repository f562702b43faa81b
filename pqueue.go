package main

// pqEntry pairs a queued item with the priority captured at enqueue time.
type pqEntry[T any] struct {
	item     T
	priority float64
}

// PriorityQueue is a binary min-heap stored in a contiguous slice. The
// comparator supplied at construction decides the ordering between two
// priorities; ties are broken arbitrarily.
//
// There is no decrease-key. Re-enqueueing an item with a better priority
// leaves a stale duplicate entry behind; the best entry surfaces first and
// the consumer is expected to discard the leftovers (the search engine does
// this with its closed set).
type PriorityQueue[T any] struct {
	entries []pqEntry[T]
	less    func(a, b float64) bool
}

// NewPriorityQueue builds an empty queue ordered by the given comparator.
func NewPriorityQueue[T any](less func(a, b float64) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{less: less}
}

// Enqueue inserts an item in O(log n).
func (pq *PriorityQueue[T]) Enqueue(item T, priority float64) {
	pq.entries = append(pq.entries, pqEntry[T]{item: item, priority: priority})
	pq.siftUp(len(pq.entries) - 1)
}

// Dequeue removes and returns the item with the minimal priority under the
// comparator. ok is false on an empty queue.
func (pq *PriorityQueue[T]) Dequeue() (item T, ok bool) {
	n := len(pq.entries)
	if n == 0 {
		return item, false
	}
	root := pq.entries[0]
	pq.entries[0] = pq.entries[n-1]
	pq.entries[n-1] = pqEntry[T]{} // release the slot for the GC
	pq.entries = pq.entries[:n-1]
	if len(pq.entries) > 1 {
		pq.siftDown(0)
	}
	return root.item, true
}

// Len returns the number of queued entries, stale duplicates included.
func (pq *PriorityQueue[T]) Len() int { return len(pq.entries) }

// IsEmpty reports whether the queue holds no entries.
func (pq *PriorityQueue[T]) IsEmpty() bool { return len(pq.entries) == 0 }

// Clear resets the queue to empty while keeping the backing array.
func (pq *PriorityQueue[T]) Clear() {
	clear(pq.entries)
	pq.entries = pq.entries[:0]
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.less(pq.entries[i].priority, pq.entries[parent].priority) {
			break
		}
		pq.entries[i], pq.entries[parent] = pq.entries[parent], pq.entries[i]
		i = parent
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.entries)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && pq.less(pq.entries[right].priority, pq.entries[left].priority) {
			smallest = right
		}
		if !pq.less(pq.entries[smallest].priority, pq.entries[i].priority) {
			break
		}
		pq.entries[i], pq.entries[smallest] = pq.entries[smallest], pq.entries[i]
		i = smallest
	}
}
