// Package postprocess - Postprocessing utilities for models.
package postprocess

import "github.com/pkg/errors"

// ErrCapacityExceeded is returned when enqueueing into a full MaxHeap.
var ErrCapacityExceeded = errors.New("priority queue capacity exceeded")

// MaxHeap is a binary max-heap over a fixed-capacity buffer.
//
// Elements are ordered by the score function supplied at construction. The
// heap never grows: the caller sizes it to the worst-case element count.
type MaxHeap[T any] struct {
	items []T
	size  int
	score func(T) float32
}

// NewMaxHeap creates an empty heap holding at most capacity elements.
//
// Arguments:
//   - capacity: The maximum number of elements held at once.
//   - score: Returns the priority of an element; larger is popped first.
//
// Returns:
//   - *MaxHeap[T]: The empty heap.
//
// @example
// h := NewMaxHeap(16, func(v float32) float32 { return v })
func NewMaxHeap[T any](capacity int, score func(T) float32) *MaxHeap[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &MaxHeap[T]{
		items: make([]T, capacity),
		score: score,
	}
}

// Enqueue inserts x and restores the heap order.
//
// Returns:
//   - error: ErrCapacityExceeded if the heap is full. Nothing is dropped or
//     overwritten in that case.
func (h *MaxHeap[T]) Enqueue(x T) error {
	if h.size == len(h.items) {
		return errors.Wrapf(ErrCapacityExceeded, "capacity %d", len(h.items))
	}
	h.items[h.size] = x
	h.swim(h.size)
	h.size++
	return nil
}

// DequeueMax removes and returns the highest scored element. The boolean is
// false when the heap is empty.
func (h *MaxHeap[T]) DequeueMax() (T, bool) {
	var zero T
	if h.size == 0 {
		return zero, false
	}

	top := h.items[0]
	h.size--
	h.items[0] = h.items[h.size]
	h.items[h.size] = zero
	h.sink(0)
	return top, true
}

// PeekMax returns the highest scored element without removing it.
func (h *MaxHeap[T]) PeekMax() (T, bool) {
	if h.size == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Empty reports whether the heap holds no elements.
func (h *MaxHeap[T]) Empty() bool {
	return h.size == 0
}

// Size returns the number of elements held.
func (h *MaxHeap[T]) Size() int {
	return h.size
}

// Capacity returns the fixed capacity of the heap.
func (h *MaxHeap[T]) Capacity() int {
	return len(h.items)
}

// DrainAll removes every element and returns them in storage order. The
// result is not sorted by score.
func (h *MaxHeap[T]) DrainAll() []T {
	out := make([]T, h.size)
	copy(out, h.items[:h.size])

	var zero T
	for i := 0; i < h.size; i++ {
		h.items[i] = zero
	}
	h.size = 0
	return out
}

func (h *MaxHeap[T]) less(i, j int) bool {
	return h.score(h.items[i]) < h.score(h.items[j])
}

func (h *MaxHeap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// swim moves the element at k toward the root while its parent scores lower.
func (h *MaxHeap[T]) swim(k int) {
	for k > 0 {
		parent := (k - 1) / 2
		if !h.less(parent, k) {
			return
		}
		h.swap(parent, k)
		k = parent
	}
}

// sink moves the element at k down while a child scores strictly higher. The
// right child wins only when it is strictly greater than the left one.
func (h *MaxHeap[T]) sink(k int) {
	for {
		left := 2*k + 1
		if left >= h.size {
			return
		}

		child := left
		if right := left + 1; right < h.size && h.less(left, right) {
			child = right
		}
		if !h.less(k, child) {
			return
		}
		h.swap(k, child)
		k = child
	}
}
