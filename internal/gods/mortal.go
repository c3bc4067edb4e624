package gods

import "github.com/hailam/santorini/internal/board"

// MortalID is the GodID for the baseline god: two workers, move to an
// adjacent space at most one level higher, then build adjacent to the
// worker's new space. Every other god in this package reuses its generator
// and scorer wholesale, differing only by their StaticGod descriptor
// fields (WinMask, BuildMask, PreventsDownMovement).
const MortalID board.GodID = 0

// buildPositionShift places the build square above the 25-bit move mask,
// leaving bit 30 unused and bit 31 as board.IsWinningMask.
const buildPositionShift = 25
const buildPositionBits = 0x1F

func init() {
	Register(&StaticGod{
		ID:        MortalID,
		Name:      "Mortal",
		Generate:  mortalGenerate,
		Make:      mortalMake,
		Unmake:    mortalUnmake,
		WinMask:   board.MainSectionMask,
		BuildMask: zeroBuildMask,
	})
}

// NewMortalMove packs a worker move from `from` to `to` plus a build at
// `build` into a single GenericMove. The move mask is the XOR of the two
// worker squares (a single from/to pair never collides since a worker
// cannot move to its own square), with the build square carried in bits
// 25-29, matching original_source/santorini_core/src/gods/generic.rs.
func NewMortalMove(from, to, build board.Square) board.GenericMove {
	mask := uint32(board.AsMask(from) | board.AsMask(to))
	return board.GenericMove(mask | uint32(build)<<buildPositionShift)
}

// mortalMoveMask returns the from/to pair, encoded as their combined bitboard.
func mortalMoveMask(m board.GenericMove) board.BitBoard {
	return board.BitBoard(m.Data()) & board.MainSectionMask
}

// mortalBuildSquare decodes the build square from a packed Mortal move.
func mortalBuildSquare(m board.GenericMove) board.Square {
	return board.Square((m.Data() >> buildPositionShift) & buildPositionBits)
}

// mortalFromTo splits a move's combined mask into (from, to), identifying
// `from` as whichever bit currently holds one of player's workers.
func mortalFromTo(state *board.BoardState, player board.Player, m board.GenericMove) (from, to board.Square) {
	mask := mortalMoveMask(m)
	ownWorkers := state.Workers[player]
	fromMask := mask & ownWorkers
	toMask := mask &^ fromMask
	return fromMask.LSB(), toMask.LSB()
}

func mortalMake(state *board.BoardState, player board.Player, m board.GenericMove) board.UndoInfo {
	undo := state.Snapshot()
	from, to := mortalFromTo(state, player, m)
	state.WorkerXor(player, board.AsMask(from)|board.AsMask(to))
	// Winning moves carry NoSquare as their build square: nothing is built.
	if build := mortalBuildSquare(m); build != board.NoSquare {
		state.BuildUp(build)
	}
	if m.IsWinning() {
		state.SetWinner(player)
	}
	state.FlipCurrentPlayer()
	return undo
}

func mortalUnmake(state *board.BoardState, player board.Player, m board.GenericMove, undo board.UndoInfo) {
	state.Restore(undo)
}

// Scoring constants from original_source/santorini_core/src/gods/generic.rs.
var workerHeightScores = [4]int{0, 10, 25, 10}

// gridPositionScores weights center squares higher than edges/corners,
// built the same way as the original's "distance from center" grid: each
// square scores 8 minus twice its Chebyshev distance from the center, so
// the center scores 8, the ring around it 6 and the perimeter 4.
var gridPositionScores [board.NumSquares]int

func init() {
	const center = (board.BoardWidth - 1) * 2 // score of the center square
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		col, row := sq.Col(), sq.Row()
		dc, dr := col-board.BoardWidth/2, row-board.BoardWidth/2
		if dc < 0 {
			dc = -dc
		}
		if dr < 0 {
			dr = -dr
		}
		dist := dc
		if dr > dist {
			dist = dr
		}
		gridPositionScores[sq] = center - dist*2
	}
}

const checkCountBonus = 30

func mortalGenerate(state *board.BoardState, player board.Player, flags uint32, keySquares board.BitBoard) board.MoveList {
	var result board.MoveList

	other := player.Other()
	otherGod := Get(state.ActiveGod[other])
	winMask := otherGod.WinMask
	// extraForbiddenBuilds holds squares the opposing god forbids building
	// on, beyond the universal domed/occupied restriction every god shares.
	extraForbiddenBuilds := otherGod.BuildMask(state.Workers[other])
	preventDown := otherGod.PreventsDownMovement

	ownWorkers := state.Workers[player]
	oppoWorkers := state.Workers[other]
	allWorkers := ownWorkers | oppoWorkers

	mateOnly := flags&MateOnly != 0
	stopOnMate := flags&StopOnMate != 0
	includeScore := flags&IncludeScore != 0
	interactWithKeySquares := flags&InteractWithKeySquares != 0

	actingWorkers := ownWorkers
	if mateOnly {
		actingWorkers &= exactlyLevel(state, 2)
	}

	// Winning moves are generated first and always emitted before any
	// other move: the move picker's get_winning_move short-circuit relies
	// on this ordering contract.
	var winners []board.GenericMove
	for aw := actingWorkers; aw != 0; {
		from, rest := aw.Pop()
		aw = rest
		height := state.GetHeight(from)
		if height != 2 {
			continue
		}
		targets := board.NeighborMap[from] &^ allWorkers & winMask
		targets &= exactlyLevel(state, 3)
		if interactWithKeySquares {
			targets &= keySquares
		}
		for t := targets; t != 0; {
			to, r := t.Pop()
			t = r
			winners = append(winners, NewMortalMove(from, to, board.NoSquare).WithWinning())
			if stopOnMate {
				break
			}
		}
		if stopOnMate && len(winners) > 0 {
			break
		}
	}
	for _, w := range winners {
		result.Add(board.NewWinningMove(w))
	}
	if mateOnly {
		return result
	}

	for fw := actingWorkers; fw != 0; {
		from, rest := fw.Pop()
		fw = rest
		height := state.GetHeight(from)

		climbMask := climbableMask(state, height, preventDown)
		targets := board.NeighborMap[from] &^ allWorkers & climbMask
		if interactWithKeySquares {
			targets &= keySquares
		}

		for tm := targets; tm != 0; {
			to, tr := tm.Pop()
			tm = tr
			toHeight := state.GetHeight(to)
			if toHeight == 3 && winMask.Get(to) {
				// Already emitted above as a winning move.
				continue
			}

			workersAfterMove := (allWorkers &^ board.AsMask(from)) | board.AsMask(to)
			buildTargets := board.NeighborMap[to] &^ workersAfterMove &^ atLeastLevel(state, 4) &^ extraForbiddenBuilds

			// baselineChecks is how many of to's buildable neighbors are
			// already at level 3, before any particular build square is
			// chosen; only meaningful once the mover's worker stands at
			// height 2, matching generic.rs's worker_end_height == 2 gate.
			baselineChecks := 0
			if toHeight == 2 {
				baselineChecks = (buildTargets & exactlyLevel(state, 3)).PopCount()
			}

			for bm := buildTargets; bm != 0; {
				buildSq, br := bm.Pop()
				bm = br

				move := NewMortalMove(from, to, buildSq)
				if !includeScore {
					result.Add(board.NewUnscoredMove(move))
					continue
				}

				isImproving := toHeight > height
				checkCount := wouldCheck(state, toHeight, buildSq, baselineChecks)
				isCheck := checkCount > 0
				raw := 50 - gridPositionScores[from] - workerHeightScores[toHeight]
				raw += checkCount * checkCountBonus
				sm := board.ScoredMove{Action: move, Score: bandedScore(raw, isCheck, isImproving)}
				result.Add(sm)
			}
		}
	}

	return result
}

// bandedScore maps a raw integer score into one of three narrow bands, each
// starting at one of the move picker's sentinels (ScoreCheck, ScoreImproving,
// ScoreNonImprovingSentinel) and 8 wide (improving moves always outrank non-improving
// ones, checks always outrank plain improving moves), while still using raw
// to break ties within a band.
func bandedScore(raw int, isCheck, isImproving bool) board.MoveScore {
	offset := raw % 8
	if offset < 0 {
		offset += 8
	}
	switch {
	case isCheck:
		return board.ScoreCheck + board.MoveScore(offset)
	case isImproving:
		return board.ScoreImproving + board.MoveScore(offset)
	default:
		return board.ScoreNonImprovingSentinel + board.MoveScore(offset)
	}
}

// wouldCheck returns how many of the mover's new square's neighbors would
// be winning-threat squares (level 3) if buildSq is the chosen build,
// mirroring generic.rs's check_count bookkeeping: baselineChecks already
// counts every buildable neighbor of `to` sitting at level 3 before this
// particular build; building on a level-2 neighbor raises it to level 3
// and adds a new check, while building on a level-3 neighbor domes it
// (raises it to level 4) and removes the one baselineChecks already
// counted for it. Only the worker actually landing at height 2 can ever
// threaten a win next turn, so toHeight != 2 always yields zero.
func wouldCheck(state *board.BoardState, toHeight int, buildSq board.Square, baselineChecks int) int {
	if toHeight != 2 {
		return 0
	}
	switch state.GetHeight(buildSq) {
	case 2:
		return baselineChecks + 1
	case 3:
		return baselineChecks - 1
	default:
		return baselineChecks
	}
}

func exactlyLevel(state *board.BoardState, level int) board.BitBoard {
	if level == 0 {
		return board.MainSectionMask &^ state.Heights[0]
	}
	if level >= 4 {
		return state.Heights[3]
	}
	return state.Heights[level-1] &^ state.Heights[level]
}

func atLeastLevel(state *board.BoardState, level int) board.BitBoard {
	if level <= 0 {
		return board.MainSectionMask
	}
	if level > 4 {
		return board.Empty
	}
	return state.Heights[level-1]
}

// climbableMask returns every square a worker at `fromHeight` may step
// onto: at most one level higher, never onto a dome, and never onto a
// lower level when the opposing god forbids downward movement.
func climbableMask(state *board.BoardState, fromHeight int, preventDown bool) board.BitBoard {
	maxClimb := fromHeight + 1
	if maxClimb > 3 {
		maxClimb = 3
	}
	allowed := board.MainSectionMask &^ atLeastLevel(state, maxClimb+1)
	if preventDown {
		// Squares strictly below fromHeight: everything not at-least-fromHeight.
		below := board.MainSectionMask &^ atLeastLevel(state, fromHeight)
		allowed &^= below
	}
	return allowed
}
