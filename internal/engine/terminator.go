package engine

import "sync/atomic"

// SearchTerminator decides whether the search should stop before descending
// into another node. It is polled synchronously once per child move (not
// node-count-batched the way the teacher's chess searcher checks its atomic
// stop flag every 4096 nodes), matching
// original_source/santorini_core/src/search_terminators.rs's per-call
// contract.
type SearchTerminator interface {
	ShouldStop(nodes uint64, depth int) bool
}

// StopFlagTerminator stops as soon as an external atomic flag is set.
type StopFlagTerminator struct {
	Flag *atomic.Bool
}

func (t StopFlagTerminator) ShouldStop(nodes uint64, depth int) bool {
	return t.Flag.Load()
}

// MaxDepthTerminator stops once the search would exceed a fixed depth.
type MaxDepthTerminator struct {
	MaxDepth int
}

func (t MaxDepthTerminator) ShouldStop(nodes uint64, depth int) bool {
	return depth > t.MaxDepth
}

// MaxNodesTerminator stops once a fixed node budget is exhausted.
type MaxNodesTerminator struct {
	MaxNodes uint64
}

func (t MaxNodesTerminator) ShouldStop(nodes uint64, depth int) bool {
	return nodes >= t.MaxNodes
}

// NoopTerminator never stops the search on its own (used in tests that
// drive iterative deepening by depth alone).
type NoopTerminator struct{}

func (NoopTerminator) ShouldStop(nodes uint64, depth int) bool {
	return false
}

// AndTerminator stops once every wrapped terminator agrees to stop.
type AndTerminator struct {
	Terminators []SearchTerminator
}

func (t AndTerminator) ShouldStop(nodes uint64, depth int) bool {
	for _, sub := range t.Terminators {
		if !sub.ShouldStop(nodes, depth) {
			return false
		}
	}
	return len(t.Terminators) > 0
}

// OrTerminator stops as soon as any wrapped terminator agrees to stop.
type OrTerminator struct {
	Terminators []SearchTerminator
}

func (t OrTerminator) ShouldStop(nodes uint64, depth int) bool {
	for _, sub := range t.Terminators {
		if sub.ShouldStop(nodes, depth) {
			return true
		}
	}
	return false
}
