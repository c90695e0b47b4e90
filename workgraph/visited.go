package workgraph

import "sync"

// visitedSet is a striped set of vertex IDs: each stripe has its own lock, so
// claims on different stripes never contend.
type visitedSet struct {
	mask   uint64
	shards []visitedShard
}

type visitedShard struct {
	mu   sync.Mutex
	seen map[int]struct{}
}

func newVisitedSet(n int) *visitedSet {
	size := 1
	for size < n {
		size <<= 1
	}
	s := &visitedSet{mask: uint64(size - 1), shards: make([]visitedShard, size)}
	for i := range s.shards {
		s.shards[i].seen = make(map[int]struct{})
	}

	return s
}

// shardOf spreads IDs with a Fibonacci hash; work-graph IDs are arbitrary ints.
func (s *visitedSet) shardOf(v int) *visitedShard {
	h := uint64(v) * 0x9E3779B97F4A7C15

	return &s.shards[(h>>32)&s.mask]
}

// claim marks v visited and reports whether this call was the first.
func (s *visitedSet) claim(v int) bool {
	sh := s.shardOf(v)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.seen[v]; ok {
		return false
	}
	sh.seen[v] = struct{}{}

	return true
}
