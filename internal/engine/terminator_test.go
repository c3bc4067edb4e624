package engine

import (
	"sync/atomic"
	"testing"
)

func TestStopFlagTerminator(t *testing.T) {
	var flag atomic.Bool
	term := StopFlagTerminator{Flag: &flag}

	if term.ShouldStop(0, 0) {
		t.Errorf("expected no stop before the flag is set")
	}
	flag.Store(true)
	if !term.ShouldStop(0, 0) {
		t.Errorf("expected a stop once the flag is set")
	}
}

func TestMaxDepthTerminator(t *testing.T) {
	term := MaxDepthTerminator{MaxDepth: 5}
	if term.ShouldStop(0, 5) {
		t.Errorf("depth equal to the limit should not stop")
	}
	if !term.ShouldStop(0, 6) {
		t.Errorf("depth beyond the limit should stop")
	}
}

func TestMaxNodesTerminator(t *testing.T) {
	term := MaxNodesTerminator{MaxNodes: 100}
	if term.ShouldStop(99, 0) {
		t.Errorf("should not stop before the node budget is exhausted")
	}
	if !term.ShouldStop(100, 0) {
		t.Errorf("should stop once the node budget is reached")
	}
}

func TestNoopTerminatorNeverStops(t *testing.T) {
	term := NoopTerminator{}
	if term.ShouldStop(1<<62, 1<<20) {
		t.Errorf("NoopTerminator must never stop")
	}
}

func TestAndTerminatorRequiresAllSubterminators(t *testing.T) {
	var flagA, flagB atomic.Bool
	term := AndTerminator{Terminators: []SearchTerminator{
		StopFlagTerminator{Flag: &flagA},
		StopFlagTerminator{Flag: &flagB},
	}}

	if term.ShouldStop(0, 0) {
		t.Errorf("should not stop until every subterminator agrees")
	}
	flagA.Store(true)
	if term.ShouldStop(0, 0) {
		t.Errorf("should not stop with only one of two subterminators agreeing")
	}
	flagB.Store(true)
	if !term.ShouldStop(0, 0) {
		t.Errorf("should stop once every subterminator agrees")
	}
}

func TestAndTerminatorEmptyNeverStops(t *testing.T) {
	term := AndTerminator{}
	if term.ShouldStop(0, 0) {
		t.Errorf("an AndTerminator with no subterminators should never stop")
	}
}

func TestOrTerminatorStopsOnFirstAgreement(t *testing.T) {
	var flag atomic.Bool
	term := OrTerminator{Terminators: []SearchTerminator{
		NoopTerminator{},
		StopFlagTerminator{Flag: &flag},
	}}

	if term.ShouldStop(0, 0) {
		t.Errorf("should not stop while no subterminator agrees")
	}
	flag.Store(true)
	if !term.ShouldStop(0, 0) {
		t.Errorf("should stop once any subterminator agrees")
	}
}
