package engine

import (
	"testing"

	"github.com/hailam/santorini/internal/board"
	"github.com/hailam/santorini/internal/gods"
)

func freshPickerState() *board.BoardState {
	bs := board.NewBoardState(gods.MortalID, gods.MortalID)
	bs.WorkerXor(board.PlayerOne, board.AsMask(board.A1)|board.AsMask(board.B1))
	bs.WorkerXor(board.PlayerTwo, board.AsMask(board.E5)|board.AsMask(board.D5))
	return bs
}

func TestMovePickerYieldsTTMoveFirst(t *testing.T) {
	bs := freshPickerState()
	all := gods.Get(gods.MortalID).Generate(bs, board.PlayerOne, gods.IncludeScore, board.MainSectionMask)
	if all.Len() == 0 {
		t.Fatalf("expected at least one legal move")
	}
	ttMove := all.Get(all.Len() - 1).Action

	picker := NewMovePicker(bs, board.PlayerOne, ttMove, board.NullMove)
	first, ok := picker.Next()
	if !ok || first != ttMove {
		t.Fatalf("expected the TT move first, got %v (ok=%v)", first, ok)
	}
}

func TestMovePickerYieldsEveryMoveExactlyOnce(t *testing.T) {
	bs := freshPickerState()
	all := gods.Get(gods.MortalID).Generate(bs, board.PlayerOne, gods.IncludeScore, board.MainSectionMask)

	picker := NewMovePicker(bs, board.PlayerOne, board.NullMove, board.NullMove)
	seen := make(map[board.GenericMove]int)
	for {
		mv, ok := picker.Next()
		if !ok {
			break
		}
		seen[mv]++
	}

	if len(seen) != all.Len() {
		t.Fatalf("expected %d distinct moves from the picker, got %d", all.Len(), len(seen))
	}
	for mv, count := range seen {
		if count != 1 {
			t.Errorf("move %v yielded %d times, expected exactly once", mv, count)
		}
	}
}

func TestMovePickerDoesNotDuplicateTTOrKillerAmongRegularMoves(t *testing.T) {
	bs := freshPickerState()
	all := gods.Get(gods.MortalID).Generate(bs, board.PlayerOne, gods.IncludeScore, board.MainSectionMask)
	if all.Len() < 2 {
		t.Skip("not enough legal moves to exercise TT+killer overlap")
	}
	ttMove := all.Get(0).Action
	killerMove := all.Get(1).Action

	picker := NewMovePicker(bs, board.PlayerOne, ttMove, killerMove)
	seen := make(map[board.GenericMove]int)
	for {
		mv, ok := picker.Next()
		if !ok {
			break
		}
		seen[mv]++
	}
	if seen[ttMove] != 1 {
		t.Errorf("TT move yielded %d times, expected exactly once", seen[ttMove])
	}
	if seen[killerMove] != 1 {
		t.Errorf("killer move yielded %d times, expected exactly once", seen[killerMove])
	}
}

func TestHasAnyMovesMatchesGeneratedList(t *testing.T) {
	bs := freshPickerState()
	picker := NewMovePicker(bs, board.PlayerOne, board.NullMove, board.NullMove)
	all := gods.Get(gods.MortalID).Generate(bs, board.PlayerOne, 0, board.MainSectionMask)

	if picker.HasAnyMoves() != (all.Len() > 0) {
		t.Errorf("HasAnyMoves disagreed with the generated move count")
	}
}
