package nnue

import "github.com/hailam/santorini/internal/board"

// Feature layout, matching original_source/santorini_core/src/nnue.rs:
//   - heightBase:   25 squares * 5 levels = 125 indices, feature = 5*sq + height
//   - ownWorkerBase:  offset heightBase+125, one block of 125 indices
//   - oppoWorkerBase: offset ownWorkerBase+125, one block of 125 indices
//
// Only 29 of the 375 addressable indices are ever active for a given
// position: 25 height features (one per square, always active at that
// square's current height) plus 2 own-worker and 2 opponent-worker
// features (one per worker, at its square and the height it stands on).
const (
	heightBase    = 0
	ownWorkerBase = board.NumSquares * 5
	oppoBase      = board.NumSquares * 5 * 2
)

// trueHeight returns state's height at sq (0 if unbuilt), matching
// board.BoardState.GetHeight.
func trueHeight(state *board.BoardState, sq board.Square) int {
	return state.GetHeight(sq)
}

// featureIndex computes the addressable index for one (base, square,
// height) triple.
func featureIndex(base int, sq board.Square, height int) int {
	return base + 5*int(sq) + height
}

// BuildFeatureArray computes the 29 active feature indices for state from
// player's perspective: player's own workers use ownWorkerBase, the other
// player's workers use oppoBase. Heights are absolute and the same for
// both perspectives, since a Santorini board has no side-relative mirroring.
func BuildFeatureArray(state *board.BoardState, player board.Player) [FeatureSlots]int {
	var out [FeatureSlots]int
	slot := 0

	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		out[slot] = featureIndex(heightBase, sq, trueHeight(state, sq))
		slot++
	}

	for _, sq := range state.Workers[player].Squares() {
		out[slot] = featureIndex(ownWorkerBase, sq, trueHeight(state, sq))
		slot++
	}
	for _, sq := range state.Workers[player.Other()].Squares() {
		out[slot] = featureIndex(oppoBase, sq, trueHeight(state, sq))
		slot++
	}

	// A worker can in principle be missing early in synthetic test
	// positions; pad any unused slots with the level-0 feature of A5 so the
	// array is always fully populated for the fixed-size accumulator diff.
	for ; slot < FeatureSlots; slot++ {
		out[slot] = featureIndex(heightBase, 0, 0)
	}

	return out
}
