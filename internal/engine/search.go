package engine

import (
	"github.com/hailam/santorini/internal/board"
	"github.com/hailam/santorini/internal/gods"
)

func godFor(state *board.BoardState, player board.Player) *gods.StaticGod {
	return gods.Get(state.ActiveGod[player])
}

// Search constants.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// PVTable stores the principal variation, following the teacher's
// triangular-table layout (internal/engine/search.go).
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.GenericMove
}

// Searcher runs iterative-deepening negamax for one BoardState.
type Searcher struct {
	tt *TranspositionTable

	nodes      uint64
	terminator SearchTerminator

	pv PVTable

	killers   [MaxPly]board.GenericMove
	undoStack [MaxPly]board.UndoInfo

	eval *Evaluator
}

// NewSearcher builds a searcher sharing tt across calls (the engine driver
// owns one TranspositionTable per running search and resets it afterward).
func NewSearcher(tt *TranspositionTable, eval *Evaluator) *Searcher {
	return &Searcher{tt: tt, eval: eval}
}

// Reset clears per-search state before a new iterative-deepening run.
func (s *Searcher) Reset(terminator SearchTerminator) {
	s.nodes = 0
	s.terminator = terminator
	s.eval.Reset()
	for i := range s.killers {
		s.killers[i] = board.NullMove
	}
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// IterativeDeepen runs negamax at depth 1, 2, 3, ... until the terminator
// stops it, calling onDepth after each completed iteration (the engine
// driver uses this to emit an each_move_callback-style progress update, per
// original_source/santorini_core/src/engine.rs).
func (s *Searcher) IterativeDeepen(state *board.BoardState, player board.Player, maxDepth int, terminator SearchTerminator, onDepth func(depth int, score int, best board.GenericMove)) (board.GenericMove, int) {
	s.Reset(terminator)

	var bestMove board.GenericMove
	bestScore := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if terminator.ShouldStop(s.nodes, depth) {
			break
		}

		score := s.negamax(state, player, depth, 0, -Infinity, Infinity)

		if terminator.ShouldStop(s.nodes, depth) {
			// This iteration may have been cut short; its root move can
			// still be trusted only if the PV was actually completed.
			if s.pv.length[0] == 0 {
				break
			}
		}

		if s.pv.length[0] > 0 {
			bestMove = s.pv.moves[0][0]
			bestScore = score
		}

		if onDepth != nil {
			onDepth(depth, bestScore, bestMove)
		}

		if bestScore > MateScore-MaxPly || bestScore < -MateScore+MaxPly {
			break
		}
	}

	return bestMove, bestScore
}

// negamax implements alpha-beta negamax for one player-to-move node. A
// BoardState has no notion of a draw (Santorini always terminates by a
// worker reaching level 3 or by a player running out of legal moves), so
// unlike the teacher's chess searcher this has no isDraw check.
func (s *Searcher) negamax(state *board.BoardState, player board.Player, depth, ply int, alpha, beta int) int {
	s.nodes++
	s.pv.length[ply] = ply

	if s.terminator.ShouldStop(s.nodes, ply) {
		return 0
	}

	if winner, has := state.GetWinner(); has {
		if winner == player {
			return MateScore - ply
		}
		return -MateScore + ply
	}

	var ttMove board.GenericMove
	entry, found := s.tt.Fetch(state.Hash)
	if found {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.ScoreType {
			case Exact:
				return score
			case LowerBound:
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if depth <= 0 {
		return s.eval.Evaluate(state, player)
	}

	killer := board.NullMove
	if ply < MaxPly {
		killer = s.killers[ply]
	}
	picker := NewMovePicker(state, player, ttMove, killer)
	god := godFor(state, player)

	bestScore := -Infinity
	bestMove := board.NullMove
	scoreType := UpperBound
	legalMoves := 0

	for {
		move, ok := picker.Next()
		if !ok {
			break
		}

		s.eval.Push()
		s.undoStack[ply] = god.Make(state, player, move)
		s.eval.Update(state, player.Other())
		legalMoves++

		score := -s.negamax(state, player.Other(), depth-1, ply+1, -beta, -alpha)

		god.Unmake(state, player, move, s.undoStack[ply])
		s.eval.Pop()

		if s.terminator.ShouldStop(s.nodes, ply) {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				scoreType = Exact

				s.pv.moves[ply][ply] = move
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if score >= beta {
			s.tt.ConditionallyInsert(state.Hash, int8(depth), LowerBound, int16(AdjustScoreToTT(score, ply)), 0, bestMove)
			if ply < MaxPly {
				s.killers[ply] = move
			}
			return score
		}
	}

	if legalMoves == 0 {
		// No legal move: Santorini has no stalemate, this is a loss.
		return -MateScore + ply
	}

	s.tt.ConditionallyInsert(state.Hash, int8(depth), scoreType, int16(AdjustScoreToTT(bestScore, ply)), 0, bestMove)
	return bestScore
}

// GetPV returns the principal variation from the most recent search.
func (s *Searcher) GetPV() []board.GenericMove {
	pv := make([]board.GenericMove, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	return pv
}
