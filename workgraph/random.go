package workgraph

import (
	"fmt"
	"math/rand"
	"time"
)

// Random is a synthetic work graph: vertices carry unpredictable IDs, edges
// may form cycles and self-loops, every vertex is reachable from the start,
// and each vertex's work costs a random duration up to MaxWork.
type Random struct {
	ids  []int
	adj  map[int][]int
	cost map[int]time.Duration
}

// NewRandom builds an n-vertex graph from seed. Each vertex gets up to
// maxDegree extra out-edges besides the spanning edge that keeps it
// reachable. Returns ErrOptionViolation for n < 1, maxDegree < 0 or
// maxWork < 0.
func NewRandom(n, maxDegree int, maxWork time.Duration, seed int64) (*Random, error) {
	switch {
	case n < 1:
		return nil, fmt.Errorf("%w: vertex count must be >= 1 (%d)", ErrOptionViolation, n)
	case maxDegree < 0:
		return nil, fmt.Errorf("%w: degree cannot be negative (%d)", ErrOptionViolation, maxDegree)
	case maxWork < 0:
		return nil, fmt.Errorf("%w: work duration cannot be negative (%s)", ErrOptionViolation, maxWork)
	}
	rng := rand.New(rand.NewSource(seed))
	g := &Random{
		ids:  make([]int, 0, n),
		adj:  make(map[int][]int, n),
		cost: make(map[int]time.Duration, n),
	}
	for len(g.ids) < n {
		id := rng.Int()
		if _, dup := g.adj[id]; dup {
			continue
		}
		g.adj[id] = nil
		g.ids = append(g.ids, id)
	}

	// no multi-edges: at most one u→v
	has := make(map[[2]int]bool)
	link := func(u, v int) {
		if !has[[2]int{u, v}] {
			has[[2]int{u, v}] = true
			g.adj[u] = append(g.adj[u], v)
		}
	}
	for i := 1; i < n; i++ {
		link(g.ids[rng.Intn(i)], g.ids[i])
	}
	for _, u := range g.ids {
		for k := rng.Intn(maxDegree + 1); k > 0; k-- {
			link(u, g.ids[rng.Intn(n)])
		}
		if maxWork > 0 {
			g.cost[u] = time.Duration(rng.Int63n(int64(maxWork) + 1))
		}
	}

	return g, nil
}

// Len returns the number of vertices.
func (g *Random) Len() int { return len(g.ids) }

// Start implements Graph.
func (g *Random) Start() int { return g.ids[0] }

// Work implements Graph: it spends the vertex's cost and returns a copy of
// its out-neighbors.
func (g *Random) Work(v int) []int {
	if d := g.cost[v]; d > 0 {
		time.Sleep(d)
	}

	return append([]int(nil), g.adj[v]...)
}
