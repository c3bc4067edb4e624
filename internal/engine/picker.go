package engine

import (
	"github.com/hailam/santorini/internal/board"
	"github.com/hailam/santorini/internal/gods"
)

// PickerStage is one state of the lazy move picker's state machine, in the
// order moves are ever emitted: the TT move first (trusted, since it can
// only ever have been written back from a move this same generator
// produced for this exact hash), then improving moves in descending score
// order, then the killer move (if it wasn't already covered), then every
// remaining move in descending score order. Scoring and sorting are both
// deferred until a stage is actually reached, so a cutoff on the TT move
// alone never pays for move generation at all.
type PickerStage int

const (
	StageYieldTT PickerStage = iota
	StageGenerateAllMoves
	StageYieldImprovers
	StageYieldKiller
	StageYieldNonImprovers
	StageDone
)

// MovePicker lazily yields moves for one node, in the staged order above.
type MovePicker struct {
	state  *board.BoardState
	player board.Player
	god    *gods.StaticGod

	ttMove     board.GenericMove
	killerMove board.GenericMove

	moves board.MoveList
	stage PickerStage

	// improverEnd is the exclusive upper bound (within moves) of the
	// partition holding improving/checking/winning moves; set once
	// generation + partitioning has happened.
	improverEnd int
	// cursor is the next unconsidered index within the current partition.
	cursor int

	ttYielded     bool
	killerYielded bool
}

// NewMovePicker builds a picker for player's turn in state, preferring
// ttMove and killerMove when they're present in the generated list.
func NewMovePicker(state *board.BoardState, player board.Player, ttMove, killerMove board.GenericMove) *MovePicker {
	return &MovePicker{
		state:      state,
		player:     player,
		god:        gods.Get(state.ActiveGod[player]),
		ttMove:     ttMove,
		killerMove: killerMove,
		stage:      StageYieldTT,
	}
}

// HasAnyMoves reports whether player has at least one legal move (used by
// the search to detect a player with no options, which Santorini treats as
// an immediate loss).
func (mp *MovePicker) HasAnyMoves() bool {
	moves := mp.god.Generate(mp.state, mp.player, 0, board.MainSectionMask)
	return moves.Len() > 0
}

// GetWinningMove returns the first winning move available to player, if
// any, without generating the full move list. It relies on the
// generator's contract that every winning move is scored board.ScoreWinning
// and appears before any quiet move.
func GetWinningMove(state *board.BoardState, player board.Player) (board.GenericMove, bool) {
	god := gods.Get(state.ActiveGod[player])
	moves := god.Generate(state, player, gods.MateOnly|gods.StopOnMate, board.MainSectionMask)
	if moves.Len() == 0 {
		return board.NullMove, false
	}
	first := moves.Get(0)
	if first.IsWinning() {
		return first.Action, true
	}
	return board.NullMove, false
}

// Next returns the next move to try, or ok=false once every move has been
// yielded exactly once.
func (mp *MovePicker) Next() (board.GenericMove, bool) {
	for {
		switch mp.stage {
		case StageYieldTT:
			mp.stage = StageGenerateAllMoves
			if mp.ttMove != board.NullMove {
				mp.ttYielded = true
				return mp.ttMove, true
			}

		case StageGenerateAllMoves:
			mp.moves = mp.god.Generate(mp.state, mp.player, gods.IncludeScore, board.MainSectionMask)
			mp.partitionImprovers()
			mp.cursor = 0
			mp.stage = StageYieldImprovers

		case StageYieldImprovers:
			if mv, ok := mp.popMax(0, mp.improverEnd); ok {
				if mv == mp.ttMove && mp.ttYielded {
					continue
				}
				return mv, true
			}
			mp.cursor = mp.improverEnd
			mp.stage = StageYieldKiller

		case StageYieldKiller:
			mp.stage = StageYieldNonImprovers
			if mp.killerMove == board.NullMove || mp.killerYielded {
				continue
			}
			if mp.killerMove == mp.ttMove && mp.ttYielded {
				continue
			}
			if idx, found := mp.find(mp.killerMove, mp.improverEnd, mp.moves.Len()); found {
				mp.killerYielded = true
				mp.moves.Swap(idx, mp.cursor)
				mv := mp.moves.Get(mp.cursor).Action
				mp.cursor++
				return mv, true
			}

		case StageYieldNonImprovers:
			if mv, ok := mp.popMax(mp.cursor, mp.moves.Len()); ok {
				if mv == mp.ttMove && mp.ttYielded {
					continue
				}
				if mv == mp.killerMove && mp.killerYielded {
					continue
				}
				return mv, true
			}
			mp.stage = StageDone

		case StageDone:
			return board.NullMove, false
		}
	}
}

// partitionImprovers moves every move scored at or above board.ScoreImproving
// to the front of mp.moves, setting improverEnd to the partition boundary.
// This is a single linear pass, not a sort: ordering within each partition
// happens lazily in popMax as the search actually asks for more moves.
func (mp *MovePicker) partitionImprovers() {
	end := 0
	for i := 0; i < mp.moves.Len(); i++ {
		if mp.moves.Get(i).Score >= board.ScoreImproving {
			mp.moves.Swap(i, end)
			end++
		}
	}
	mp.improverEnd = end
}

// popMax finds the highest-scored move in [mp.cursor, to), swaps it to
// position mp.cursor, advances mp.cursor past it, and returns its action;
// `from` is not read, the scan always starts at mp.cursor. This is the
// same lazy-selection idiom as the teacher's ordering.go PickMove: sort
// only as much of the list as the caller actually consumes.
func (mp *MovePicker) popMax(from, to int) (board.GenericMove, bool) {
	if mp.cursor >= to {
		return board.NullMove, false
	}
	best := mp.cursor
	for j := mp.cursor + 1; j < to; j++ {
		if mp.moves.Get(j).Score > mp.moves.Get(best).Score {
			best = j
		}
	}
	mp.moves.Swap(mp.cursor, best)
	mv := mp.moves.Get(mp.cursor).Action
	mp.cursor++
	return mv, true
}

func (mp *MovePicker) find(target board.GenericMove, from, to int) (int, bool) {
	for i := from; i < to; i++ {
		if mp.moves.Get(i).Action == target {
			return i, true
		}
	}
	return 0, false
}
