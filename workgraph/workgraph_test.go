package workgraph_test

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/halo/workgraph"
)

// adjacency is a fixed work graph that counts Work calls per vertex.
type adjacency struct {
	start int
	edges map[int][]int

	mu    sync.Mutex
	calls map[int]int
}

func newAdjacency(start int, edges map[int][]int) *adjacency {
	return &adjacency{start: start, edges: edges, calls: make(map[int]int)}
}

func (a *adjacency) Start() int { return a.start }

func (a *adjacency) Work(v int) []int {
	a.mu.Lock()
	a.calls[v]++
	a.mu.Unlock()

	return a.edges[v]
}

// TestTraverse_Errors verifies that invalid inputs and options are rejected.
func TestTraverse_Errors(t *testing.T) {
	if _, err := workgraph.Traverse(context.Background(), nil); !errors.Is(err, workgraph.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	g := newAdjacency(0, nil)
	for name, opt := range map[string]workgraph.Option{
		"workers": workgraph.WithWorkers(0),
		"depth":   workgraph.WithMaxDepth(-1),
		"shards":  workgraph.WithShards(0),
	} {
		if _, err := workgraph.Traverse(context.Background(), g, opt); !errors.Is(err, workgraph.ErrOptionViolation) {
			t.Errorf("%s: want ErrOptionViolation, got %v", name, err)
		}
	}
}

// TestTraverse_SingleVertex covers a start vertex with no neighbors.
func TestTraverse_SingleVertex(t *testing.T) {
	res, err := workgraph.Traverse(context.Background(), newAdjacency(7, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{7}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	if res.Levels != 1 || res.Visited != 1 {
		t.Errorf("Levels=%d Visited=%d; want 1, 1", res.Levels, res.Visited)
	}
}

// TestTraverse_CycleAndSelfLoop checks level order and depths on a graph
// with a cycle and a self-loop.
func TestTraverse_CycleAndSelfLoop(t *testing.T) {
	g := newAdjacency(0, map[int][]int{
		0: {2, 1, 0},
		1: {3},
		2: {3, 0},
		3: {4, 1},
		4: {0},
	})
	res, err := workgraph.Traverse(context.Background(), g, workgraph.WithWorkers(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	wantDepth := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 4: 3}
	if !reflect.DeepEqual(res.Depth, wantDepth) {
		t.Errorf("Depth = %v; want %v", res.Depth, wantDepth)
	}
	if res.Levels != 4 {
		t.Errorf("Levels = %d; want 4", res.Levels)
	}
	for v, n := range g.calls {
		if n != 1 {
			t.Errorf("vertex %d worked %d times", v, n)
		}
	}
}

// TestTraverse_RandomGraphExactlyOnce runs dense random graphs with many
// workers and checks every reachable vertex is worked exactly once and the
// result does not depend on the pool size.
func TestTraverse_RandomGraphExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 500
	edges := make(map[int][]int, n)
	for v := 0; v < n; v++ {
		for k := rng.Intn(6); k > 0; k-- {
			edges[v] = append(edges[v], rng.Intn(n))
		}
	}

	var reference *workgraph.Result
	for _, workers := range []int{1, 4, 16} {
		g := newAdjacency(0, edges)
		res, err := workgraph.Traverse(context.Background(), g, workgraph.WithWorkers(workers), workgraph.WithShards(8))
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(g.calls) != res.Visited {
			t.Errorf("workers=%d: %d vertices worked, %d visited", workers, len(g.calls), res.Visited)
		}
		for v, c := range g.calls {
			if c != 1 {
				t.Errorf("workers=%d: vertex %d worked %d times", workers, v, c)
			}
		}
		if reference == nil {
			reference = res
			continue
		}
		if !reflect.DeepEqual(res.Order, reference.Order) || !reflect.DeepEqual(res.Depth, reference.Depth) {
			t.Errorf("workers=%d: result differs from single-worker run", workers)
		}
	}
}

// TestTraverse_MaxDepth stops discovery past the limit.
func TestTraverse_MaxDepth(t *testing.T) {
	chain := map[int][]int{0: {1}, 1: {2}, 2: {3}, 3: {4}}
	res, err := workgraph.Traverse(context.Background(), newAdjacency(0, chain), workgraph.WithMaxDepth(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{0, 1, 2}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
}

// TestTraverse_OnVisitAbort propagates the hook error.
func TestTraverse_OnVisitAbort(t *testing.T) {
	boom := errors.New("boom")
	chain := map[int][]int{0: {1}, 1: {2}, 2: {3}}
	var seen atomic.Int32
	_, err := workgraph.Traverse(context.Background(), newAdjacency(0, chain), workgraph.WithOnVisit(func(v, _ int) error {
		seen.Add(1)
		if v == 2 {
			return boom
		}
		return nil
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if seen.Load() != 3 {
		t.Errorf("OnVisit calls = %d; want 3", seen.Load())
	}
}

// TestTraverse_Cancelled returns the context error.
func TestTraverse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := workgraph.Traverse(ctx, newAdjacency(0, map[int][]int{0: {1}}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// TestFunc adapts closures to Graph.
func TestFunc(t *testing.T) {
	g := workgraph.Func{StartVertex: 1, Do: func(v int) []int {
		if v < 8 {
			return []int{v * 2, v*2 + 1}
		}
		return nil
	}}
	res, err := workgraph.Traverse(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Visited != 15 || res.Levels != 4 {
		t.Errorf("Visited=%d Levels=%d; want 15, 4", res.Visited, res.Levels)
	}
}
