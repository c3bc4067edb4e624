package engine

import (
	"testing"

	"github.com/hailam/santorini/internal/board"
)

func TestFetchMissOnEmptyTable(t *testing.T) {
	tt := NewTranspositionTable()
	if _, ok := tt.Fetch(12345); ok {
		t.Errorf("expected a miss on a freshly allocated table")
	}
}

func TestInsertThenFetchRoundTrip(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(987654321)
	move := board.GenericMove(42)

	tt.Insert(hash, 5, Exact, 100, 50, move)

	entry, ok := tt.Fetch(hash)
	if !ok {
		t.Fatalf("expected a hit after Insert")
	}
	if entry.BestMove != move || entry.Depth != 5 || entry.Score != 100 {
		t.Errorf("fetched entry does not match what was inserted: %+v", entry)
	}
}

func TestConditionallyInsertPrefersDeeperSearch(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(42)

	tt.ConditionallyInsert(hash, 10, Exact, 100, 0, board.GenericMove(1))
	tt.ConditionallyInsert(hash, 3, Exact, 200, 0, board.GenericMove(2))

	entry, ok := tt.Fetch(hash)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if entry.Depth != 10 || entry.Score != 100 {
		t.Errorf("a shallower search overwrote a deeper entry: %+v", entry)
	}
}

func TestConditionallyInsertKeepsExistingBestMoveWhenNewOneIsNull(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(7)

	tt.ConditionallyInsert(hash, 8, Exact, 50, 0, board.GenericMove(99))
	tt.ConditionallyInsert(hash, 2, UpperBound, 10, 0, board.NullMove)

	entry, _ := tt.Fetch(hash)
	if entry.BestMove != board.GenericMove(99) {
		t.Errorf("expected the deeper entry's best move to survive, got %v", entry.BestMove)
	}
}

func TestConditionallyInsertAtEqualDepthPreservesBestMoveInsteadOfClobbering(t *testing.T) {
	tt := NewTranspositionTable()
	hash := uint64(55)

	tt.ConditionallyInsert(hash, 4, Exact, 50, 0, board.GenericMove(7))
	// Same depth, no best move supplied: spec.md describes this as
	// "preserves the existing best_move otherwise" rather than a strict
	// "only overwrite when strictly deeper" rule, so the write at equal
	// depth must still carry the existing PV move forward, not NullMove.
	tt.ConditionallyInsert(hash, 4, UpperBound, 10, 0, board.NullMove)

	entry, ok := tt.Fetch(hash)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if entry.BestMove != board.GenericMove(7) {
		t.Errorf("an equal-depth write with no best move clobbered the existing PV move: got %v, want %v", entry.BestMove, board.GenericMove(7))
	}
	if entry.Score != 10 || entry.ScoreType != UpperBound {
		t.Errorf("expected the equal-depth write to still update score/type: got score=%d type=%v", entry.Score, entry.ScoreType)
	}
}

func TestResetClearsEveryEntry(t *testing.T) {
	tt := NewTranspositionTable()
	tt.Insert(1, 1, Exact, 0, 0, board.NullMove)
	tt.Reset()
	if _, ok := tt.Fetch(1); ok {
		t.Errorf("expected Reset to clear all entries")
	}
}

func TestAgeResetsOnlyWhenMatchupChanges(t *testing.T) {
	tt := NewTranspositionTable()
	tt.Insert(1, 1, Exact, 0, 0, board.NullMove)

	tt.Age(0, 0)
	if _, ok := tt.Fetch(1); !ok {
		t.Errorf("Age should not reset the table for the same matchup")
	}

	tt.Age(0, 1)
	if _, ok := tt.Fetch(1); ok {
		t.Errorf("Age should reset the table when the god matchup changes")
	}
}

func TestMateScoreNormalizationRoundTrip(t *testing.T) {
	mateScore := MateScore - 3
	stored := AdjustScoreToTT(mateScore, 2)
	recovered := AdjustScoreFromTT(stored, 2)
	if recovered != mateScore {
		t.Errorf("mate score did not survive a to-TT/from-TT round trip: got %d, want %d", recovered, mateScore)
	}
}

func TestOrdinaryScoreIsUnaffectedByNormalization(t *testing.T) {
	score := 150
	if got := AdjustScoreToTT(score, 7); got != score {
		t.Errorf("an ordinary (non-mate) score should pass through unchanged, got %d", got)
	}
}
