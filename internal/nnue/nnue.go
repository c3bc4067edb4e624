// Package nnue implements the Santorini evaluator: a single shared hidden
// layer over 29 active features (25 per-square heights, 2 own-worker, 2
// opponent-worker), quantized for integer-only inference. Unlike the
// teacher's chess NNUE bridge (a HalfKP-style two-perspective network), a
// Santorini board has no side-relative square mirroring to do: height is
// absolute, and only which worker set counts as "own" vs "opponent"
// depends on whose turn it is.
package nnue

import "github.com/hailam/santorini/internal/board"

// Network architecture constants, matching
// original_source/santorini_core/src/nnue.rs exactly.
const (
	HiddenSize   = 512
	FeatureSlots = 29  // active features per position: 25 heights + 2 own + 2 oppo
	FeatureCount = 375 // total addressable feature indices (5 levels * 25 squares * 3 planes)

	QA    = 255
	QB    = 64
	Scale = 400
)

// Evaluator wraps a loaded Network and the incremental accumulator for the
// position currently being searched.
type Evaluator struct {
	net  *Network
	accs AccumulatorStack
}

// NewEvaluator loads weights from weightsFile, or falls back to small
// random weights (for tests/tooling that don't ship a trained model).
func NewEvaluator(weightsFile string) (*Evaluator, error) {
	net := NewNetwork()
	if weightsFile != "" {
		if err := net.LoadWeights(weightsFile); err != nil {
			return nil, err
		}
	} else {
		net.InitRandom(12345)
	}
	return &Evaluator{net: net}, nil
}

// Evaluate scores state from player's perspective, in the same units as
// the search's mate/centipawn scale.
func (e *Evaluator) Evaluate(state *board.BoardState, player board.Player) int {
	acc := e.accs.Current()
	if !acc.computed {
		acc.computeFromScratch(state, player, e.net)
	}
	return e.net.Forward(&acc.Accumulator)
}

// Push saves the current accumulator before a move is made, so Pop can
// restore it cheaply after unmake instead of recomputing from scratch.
func (e *Evaluator) Push() {
	e.accs.Push()
}

// Pop restores the accumulator saved by the matching Push.
func (e *Evaluator) Pop() {
	e.accs.Pop()
}

// Update incrementally refreshes the current accumulator to match state
// from player's perspective, diffing against the previous ply's feature
// set. Call after a move has been made.
func (e *Evaluator) Update(state *board.BoardState, player board.Player) {
	e.accs.Current().replaceFeatures(state, player, e.net)
}

// Reset clears the accumulator stack for a new search.
func (e *Evaluator) Reset() {
	e.accs.Reset()
}
