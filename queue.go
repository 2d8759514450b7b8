package stash

import "container/heap"

// expiryQueue is a min-heap of pending expiries ordered by expiresAt.
// It implements heap.Interface and may hold stale entries for keys whose
// deadline changed after the entry was pushed.
type expiryQueue[K comparable] []entry[K]

// Compile-time interface assertion.
var _ heap.Interface = (*expiryQueue[string])(nil)

func (q expiryQueue[K]) Len() int { return len(q) }

func (q expiryQueue[K]) Less(i, j int) bool {
	return q[i].expiresAt.Before(q[j].expiresAt)
}

func (q expiryQueue[K]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *expiryQueue[K]) Push(x any) {
	*q = append(*q, x.(entry[K]))
}

func (q *expiryQueue[K]) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = entry[K]{} // drop the key reference
	*q = old[:n-1]
	return e
}

// peek returns the entry that expires first without removing it.
func (q expiryQueue[K]) peek() (entry[K], bool) {
	if len(q) == 0 {
		return entry[K]{}, false
	}
	return q[0], true
}

func (q *expiryQueue[K]) push(e entry[K]) {
	heap.Push(q, e)
}

func (q *expiryQueue[K]) pop() entry[K] {
	return heap.Pop(q).(entry[K])
}
