package workgraph

import (
	"sync"
	"sync/atomic"
	"testing"
)

// TestVisitedSet_ConcurrentClaims checks that exactly one claimer wins per ID.
func TestVisitedSet_ConcurrentClaims(t *testing.T) {
	s := newVisitedSet(5) // rounded to 8 stripes
	if len(s.shards) != 8 {
		t.Fatalf("stripes = %d; want 8", len(s.shards))
	}
	const ids, goroutines = 1000, 8
	var wins atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := -ids / 2; v < ids/2; v++ {
				if s.claim(v) {
					wins.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	if wins.Load() != ids {
		t.Errorf("wins=%d; want %d", wins.Load(), ids)
	}
	for v := -ids / 2; v < ids/2; v++ {
		if s.claim(v) {
			t.Fatalf("vertex %d claimed twice", v)
		}
	}
}
