package nnue

import "github.com/hailam/santorini/internal/board"

// Accumulator holds the running sum of feature-weight rows for one position,
// following the teacher's accumulator.go shape but with a single
// perspective vector: Santorini has no side-relative board mirroring, so
// there is no separate White/Black half the way chess needs one.
type Accumulator struct {
	Vals [HiddenSize]int16
}

// addFeature adds one feature row into the accumulator.
func (a *Accumulator) addFeature(net *Network, idx int) {
	row := &net.FeatureWeights[idx]
	for i := 0; i < HiddenSize; i++ {
		a.Vals[i] += row[i]
	}
}

// removeFeature subtracts one feature row from the accumulator.
func (a *Accumulator) removeFeature(net *Network, idx int) {
	row := &net.FeatureWeights[idx]
	for i := 0; i < HiddenSize; i++ {
		a.Vals[i] -= row[i]
	}
}

// LabeledAccumulator pairs an Accumulator with the 29 feature indices that
// produced it, so a later position can be diffed slot-by-slot against it
// instead of rebuilt from scratch. Each of the 29 slots (25 heights, 2 own
// workers, 2 opponent workers) always holds exactly one active feature
// index, so replacement is always well defined even when a slot's value
// changes between plies.
type LabeledAccumulator struct {
	Accumulator
	features [FeatureSlots]int
	computed bool
}

// computeFromScratch rebuilds the accumulator from net's biases plus every
// active feature for state from player's perspective.
func (la *LabeledAccumulator) computeFromScratch(state *board.BoardState, player board.Player, net *Network) {
	la.Vals = net.FeatureBias
	la.features = BuildFeatureArray(state, player)
	for _, idx := range la.features {
		la.addFeature(net, idx)
	}
	la.computed = true
}

// replaceFeatures recomputes the active feature set for state and updates
// the accumulator incrementally: slots whose feature index is unchanged
// are left alone, and only the slots that did change pay for a
// remove+add pair.
func (la *LabeledAccumulator) replaceFeatures(state *board.BoardState, player board.Player, net *Network) {
	if !la.computed {
		la.computeFromScratch(state, player, net)
		return
	}
	next := BuildFeatureArray(state, player)
	for slot := 0; slot < FeatureSlots; slot++ {
		if next[slot] == la.features[slot] {
			continue
		}
		la.removeFeature(net, la.features[slot])
		la.addFeature(net, next[slot])
	}
	la.features = next
}

// AccumulatorStack is a push/pop stack of LabeledAccumulators, one per ply
// of search, following the teacher's AccumulatorStack idiom so Evaluate/
// Update/Push/Pop can be called from the negamax make/unmake loop without
// reallocating on every node.
type AccumulatorStack struct {
	stack [board.NumSquares*5 + 1]LabeledAccumulator // generous bound on search depth
	top   int
}

// Current returns the accumulator for the position at the top of the stack.
func (s *AccumulatorStack) Current() *LabeledAccumulator {
	return &s.stack[s.top]
}

// Push duplicates the current accumulator onto a new stack slot, to be
// mutated in place by the next Update call after a move is made.
func (s *AccumulatorStack) Push() {
	cur := s.stack[s.top]
	s.top++
	if s.top >= len(s.stack) {
		s.top = len(s.stack) - 1
	}
	s.stack[s.top] = cur
}

// Pop discards the top accumulator, restoring the one below it after a
// move has been unmade.
func (s *AccumulatorStack) Pop() {
	if s.top > 0 {
		s.top--
	}
}

// Reset empties the stack for a new search.
func (s *AccumulatorStack) Reset() {
	s.top = 0
	s.stack[0] = LabeledAccumulator{}
}
