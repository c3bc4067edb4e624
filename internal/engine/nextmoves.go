package engine

import "github.com/hailam/santorini/internal/board"

// NextMove pairs one legal move with the position it leads to, the shape
// spec.md's "next_moves" protocol command reports for every interactive
// successor of a position. Unlike Engine.StartSearch, this never runs a search: it is
// pure move generation plus make/unmake, grounded on the same
// StaticGod.Generate/Make/Unmake triple the searcher uses.
type NextMove struct {
	Move  board.GenericMove
	After *board.BoardState
}

// NextMoves enumerates every legal move for the player to move in state,
// together with the resulting position, without touching the
// transposition table or evaluator. InteractWithKeySquares-style
// restriction does not apply here: every legal move is interactive from
// the perspective of a caller enumerating the position's successors.
func NextMoves(state *board.BoardState) []NextMove {
	god := godFor(state, state.CurrentPlayer)
	moves := god.Generate(state, state.CurrentPlayer, 0, board.MainSectionMask)

	out := make([]NextMove, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i).Action

		working := state.Clone()
		god.Make(working, state.CurrentPlayer, move)

		out = append(out, NextMove{Move: move, After: working})
	}
	return out
}

// ApplyMove returns the position reached by playing move for player in
// state, without mutating state. It is the protocol layer's way of
// rendering a best_move message's next_state field from a Searcher result.
func ApplyMove(state *board.BoardState, player board.Player, move board.GenericMove) *board.BoardState {
	working := state.Clone()
	god := godFor(state, player)
	god.Make(working, player, move)
	return working
}
