package orderbook

import (
	"container/heap"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceHeapOrdering(t *testing.T) {
	maxHeap := NewPriceHeap(func(i, j decimal.Decimal) bool { return i.GreaterThan(j) })
	minHeap := NewPriceHeap(func(i, j decimal.Decimal) bool { return i.LessThan(j) })

	for _, p := range []float64{101.5, 99, 100, 103.25, 100} {
		heap.Push(maxHeap, px(p))
		heap.Push(minHeap, px(p))
	}

	if maxHeap.Len() != 4 || minHeap.Len() != 4 {
		t.Fatalf("duplicate prices should be ignored, got %d and %d", maxHeap.Len(), minHeap.Len())
	}

	best, ok := maxHeap.Peek()
	if !ok || !best.Equal(px(103.25)) {
		t.Errorf("expected max 103.25, got %s", best)
	}
	best, ok = minHeap.Peek()
	if !ok || !best.Equal(px(99)) {
		t.Errorf("expected min 99, got %s", best)
	}

	want := []float64{99, 100, 101.5, 103.25}
	for i, p := range minHeap.Sorted() {
		if !p.Equal(px(want[i])) {
			t.Errorf("sorted[%d]: expected %v, got %s", i, want[i], p)
		}
	}
	// Sorted must not disturb the heap
	if best, _ := minHeap.Peek(); !best.Equal(px(99)) {
		t.Errorf("heap root changed after Sorted: %s", best)
	}

	for _, w := range want {
		got := heap.Pop(minHeap).(decimal.Decimal)
		if !got.Equal(px(w)) {
			t.Errorf("pop: expected %v, got %s", w, got)
		}
	}
	if _, ok := minHeap.Peek(); ok {
		t.Errorf("expected empty heap")
	}

	// a popped price can be pushed again
	heap.Push(minHeap, px(99))
	if minHeap.Len() != 1 {
		t.Errorf("expected re-push to be accepted")
	}
}
