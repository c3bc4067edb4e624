package engine

import (
	"github.com/hailam/santorini/internal/board"
	"github.com/hailam/santorini/internal/nnue"
)

// Evaluator adapts internal/nnue.Evaluator to the Searcher's make/unmake
// shaped interface. Santorini's evaluation is NNUE-only: there is no
// handwritten heuristic fallback the way the teacher's chess engine keeps
// one (internal/engine/eval.go's PST/mobility/king-safety terms), because
// original_source/santorini_core has none either; a position that has no
// loaded weights file runs on randomly initialized weights instead of a
// degraded-but-meaningful score.
type Evaluator struct {
	nn *nnue.Evaluator
}

// NewEvaluator loads (or randomly initializes, if weightsFile is empty)
// the NNUE weights backing this evaluator.
func NewEvaluator(weightsFile string) (*Evaluator, error) {
	nn, err := nnue.NewEvaluator(weightsFile)
	if err != nil {
		return nil, err
	}
	return &Evaluator{nn: nn}, nil
}

// Evaluate scores state from player's perspective.
func (e *Evaluator) Evaluate(state *board.BoardState, player board.Player) int {
	return e.nn.Evaluate(state, player)
}

// Push/Pop/Reset forward to the underlying accumulator stack, used by the
// search driver around make/unmake so accumulator updates stay incremental
// across the negamax tree (see search.go's negamax Make/Unmake loop).
func (e *Evaluator) Push()  { e.nn.Push() }
func (e *Evaluator) Pop()   { e.nn.Pop() }
func (e *Evaluator) Reset() { e.nn.Reset() }

// Update refreshes the top-of-stack accumulator after a move has changed
// state, diffing against the previous ply's feature set.
func (e *Evaluator) Update(state *board.BoardState, player board.Player) {
	e.nn.Update(state, player)
}
