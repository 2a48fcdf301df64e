package postprocess

import (
	"math/rand"
	"testing"
)

// BenchmarkMaxHeap fills a heap to capacity and drains it, the access pattern
// of one decoded frame (33x33 cells, 17 channels).
func BenchmarkMaxHeap(b *testing.B) {
	const capacity = 33 * 33 * 17

	rng := rand.New(rand.NewSource(42))
	items := make([]scored, capacity)
	for i := range items {
		items[i] = scored{id: i, score: rng.Float32()}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		h := NewMaxHeap(capacity, byScore)
		for _, it := range items {
			if err := h.Enqueue(it); err != nil {
				b.Fatal(err)
			}
		}
		for !h.Empty() {
			h.DequeueMax()
		}
	}
}

// BenchmarkMaxHeapPeek measures PeekMax on a full heap.
func BenchmarkMaxHeapPeek(b *testing.B) {
	h := NewMaxHeap(1024, byScore)
	for i := 0; i < 1024; i++ {
		_ = h.Enqueue(scored{id: i, score: float32(i)})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = h.PeekMax()
	}
}
