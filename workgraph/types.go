package workgraph

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel errors for work-graph traversal.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("workgraph: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("workgraph: invalid option supplied")
)

// DefaultShards is the stripe count of the visited set.
const DefaultShards = 64

// Graph is a work graph. Work performs the vertex's work and returns its
// neighbors; it is called exactly once per reachable vertex and may be called
// concurrently for different vertices.
type Graph interface {
	Start() int
	Work(v int) []int
}

// Func adapts a start vertex and a work function to Graph.
type Func struct {
	StartVertex int
	Do          func(v int) []int
}

// Start implements Graph.
func (f Func) Start() int { return f.StartVertex }

// Work implements Graph.
func (f Func) Work(v int) []int { return f.Do(v) }

// Option configures a traversal. Invalid options are recorded and surfaced
// as ErrOptionViolation when Traverse is invoked.
type Option func(*Options)

// Options holds parameters and callbacks of one traversal.
type Options struct {
	// Workers is the size of the pool draining each level's queue.
	Workers int

	// MaxDepth, if > 0, stops discovering vertices beyond this depth.
	MaxDepth int

	// Shards is the stripe count of the visited set (rounded up to a power of two).
	Shards int

	// OnVisit is called before a vertex's work; returning an error aborts
	// the traversal. It runs on pool goroutines and must be safe for
	// concurrent use.
	OnVisit func(v, depth int) error

	err error
}

// DefaultOptions returns one worker per CPU, no depth limit, DefaultShards
// stripes and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
		Shards:  DefaultShards,
		OnVisit: func(int, int) error { return nil },
	}
}

// WithWorkers sets the pool size (n >= 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithMaxDepth limits discovery depth.
//
//	d > 0: vertices deeper than d are not discovered
//	d == 0: no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithShards sets the visited-set stripe count (n >= 1).
func WithShards(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: shards must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Shards = n
	}
}

// WithOnVisit registers a callback run before each vertex's work.
func WithOnVisit(fn func(v, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a traversal.
//   - Order: processed vertices level by level, ascending within a level.
//   - Depth: level of every processed vertex.
//   - Visited: number of processed vertices.
//   - Levels: number of non-empty levels.
type Result struct {
	Order   []int
	Depth   map[int]int
	Visited int
	Levels  int
}
