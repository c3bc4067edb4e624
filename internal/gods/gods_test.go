package gods

import (
	"testing"

	"github.com/hailam/santorini/internal/board"
)

func freshMortalState() *board.BoardState {
	bs := board.NewBoardState(MortalID, MortalID)
	bs.WorkerXor(board.PlayerOne, board.AsMask(board.A1)|board.AsMask(board.B1))
	bs.WorkerXor(board.PlayerTwo, board.AsMask(board.E5)|board.AsMask(board.D5))
	return bs
}

func TestRegistryHasThinGods(t *testing.T) {
	for _, id := range []board.GodID{MortalID, HadesID, HeraID} {
		if Get(id) == nil {
			t.Errorf("expected a registered god for id %d", id)
		}
	}
}

func TestMortalMakeUnmakeRoundTrip(t *testing.T) {
	bs := freshMortalState()
	god := Get(MortalID)

	moves := god.Generate(bs, board.PlayerOne, 0, board.MainSectionMask)
	if moves.Len() == 0 {
		t.Fatalf("expected at least one legal move from the starting placement")
	}

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i).Action

		before := *bs
		undo := god.Make(bs, board.PlayerOne, move)
		god.Unmake(bs, board.PlayerOne, move, undo)

		if bs.Heights != before.Heights {
			t.Fatalf("move %v: heights did not round trip", move)
		}
		if bs.Workers != before.Workers {
			t.Fatalf("move %v: workers did not round trip", move)
		}
		if bs.Hash != before.Hash {
			t.Fatalf("move %v: hash did not round trip", move)
		}
		if bs.CurrentPlayer != before.CurrentPlayer {
			t.Fatalf("move %v: current player did not round trip", move)
		}
	}
}

func TestMortalGenerateNoDomedBuilds(t *testing.T) {
	bs := freshMortalState()
	// Dome every neighbor of B1 so a worker there has nowhere to build.
	for _, sq := range board.NeighborMap[board.B1].Squares() {
		for i := 0; i < 4; i++ {
			bs.BuildUp(sq)
		}
	}

	god := Get(MortalID)
	moves := god.Generate(bs, board.PlayerOne, IncludeScore, board.MainSectionMask)

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i).Action
		build := mortalBuildSquare(move)
		if bs.GetHeight(build) >= 4 {
			t.Errorf("generated a build on a domed square: %v", build)
		}
	}
}

func TestMortalGenerateScoresCheckingMoveAboveBandForPlainImprover(t *testing.T) {
	bs := board.NewBoardState(MortalID, MortalID)
	bs.WorkerXor(board.PlayerOne, board.AsMask(board.B2))
	bs.WorkerXor(board.PlayerTwo, board.AsMask(board.E5))

	// B2 -> C2 climbs from height 1 to height 2. D2, a neighbor of C2, sits
	// at height 2 so building on it raises it to level 3 and creates a
	// check; some other neighbor of C2 left at height 0 does not.
	bs.BuildUp(board.B2)
	bs.BuildUp(board.C2)
	bs.BuildUp(board.C2)
	bs.BuildUp(board.D2)
	bs.BuildUp(board.D2)

	god := Get(MortalID)
	moves := god.Generate(bs, board.PlayerOne, IncludeScore, board.MainSectionMask)

	var checkScore, plainScore board.MoveScore
	var foundCheck, foundPlain bool
	for i := 0; i < moves.Len(); i++ {
		sm := moves.Get(i)
		move := sm.Action
		from, to := mortalFromTo(bs, board.PlayerOne, move)
		if from != board.B2 || to != board.C2 {
			continue
		}
		switch mortalBuildSquare(move) {
		case board.D2:
			checkScore = sm.Score
			foundCheck = true
		case board.B1:
			plainScore = sm.Score
			foundPlain = true
		}
	}

	if !foundCheck {
		t.Fatalf("expected a generated move building on D2 (raising it to level 3)")
	}
	if !foundPlain {
		t.Fatalf("expected a generated move building on B1 (no adjacent level-3 threat)")
	}
	if checkScore < board.ScoreCheck {
		t.Errorf("expected the checking build's score (%d) to fall in the check band (>= %d)", checkScore, board.ScoreCheck)
	}
	if plainScore >= board.ScoreCheck {
		t.Errorf("expected the non-checking build's score (%d) to fall below the check band (< %d)", plainScore, board.ScoreCheck)
	}
}

func TestWinningMovesReportIsWinning(t *testing.T) {
	bs := board.NewBoardState(MortalID, MortalID)
	bs.WorkerXor(board.PlayerOne, board.AsMask(board.C2))
	bs.WorkerXor(board.PlayerTwo, board.AsMask(board.E5))
	bs.BuildUp(board.C2)
	bs.BuildUp(board.C2)
	bs.BuildUp(board.C3)
	bs.BuildUp(board.C3)
	bs.BuildUp(board.C3)

	god := Get(MortalID)
	moves := god.Generate(bs, board.PlayerOne, 0, board.MainSectionMask)

	foundWinning := false
	for i := 0; i < moves.Len(); i++ {
		sm := moves.Get(i)
		if sm.IsWinning() {
			foundWinning = true
		}
	}
	if !foundWinning {
		t.Errorf("expected a winning move for a worker one step below a height-3 neighbor")
	}
}

func TestHadesPreventsDownwardMovementForOpponent(t *testing.T) {
	bs := board.NewBoardState(MortalID, HadesID)
	bs.WorkerXor(board.PlayerOne, board.AsMask(board.C3))
	bs.WorkerXor(board.PlayerTwo, board.AsMask(board.A1))
	bs.BuildUp(board.C3)
	bs.BuildUp(board.C3)

	god := Get(MortalID)
	moves := god.Generate(bs, board.PlayerOne, 0, board.MainSectionMask)

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i).Action
		from, to := mortalFromTo(bs, board.PlayerOne, move)
		if bs.GetHeight(to) < bs.GetHeight(from) {
			t.Errorf("move %v: opponent playing Hades should forbid downward movement", move)
		}
	}
}
