package engine

import (
	"github.com/hailam/santorini/internal/board"
)

// TableSize is fixed (not power-of-two, unlike the teacher's chess TT)
// because the original Santorini engine sizes its table to a prime near
// 10 million entries and keys into it with a plain modulo rather than a
// bitmask, trading the teacher's fast `& mask` lookup for a design that
// never needs rounding to a power of two when the caller asks for a
// specific entry budget. See original_source/santorini_core/src/
// transposition_table.rs's TABLE_SIZE constant.
const TableSize uint64 = 10_000_019

// ScoreType indicates the kind of bound stored in the table.
type ScoreType uint8

const (
	Exact ScoreType = iota
	LowerBound
	UpperBound
)

// TTEntry is one transposition table slot. It stores the full 64-bit hash,
// and Fetch compares it against the query, so a slot holding a different
// position reads as a miss; two positions whose full 64-bit hashes collide
// are treated as the same position. Single-probe design: no chaining.
type TTEntry struct {
	Hash      uint64
	BestMove  board.GenericMove
	Depth     int8
	ScoreType ScoreType
	Score     int16
	Eval      int16
	filled    bool
}

// TranspositionTable is a fixed-size, open-addressed (single-slot, no
// probing) hash table for search results.
type TranspositionTable struct {
	entries []TTEntry
	god1    board.GodID
	god2    board.GodID
	haveGod bool
}

// NewTranspositionTable allocates a table with TableSize slots.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{entries: make([]TTEntry, TableSize)}
}

func getKey(hash uint64) uint64 {
	return hash % TableSize
}

// Fetch returns the entry stored for hash, if any.
func (tt *TranspositionTable) Fetch(hash uint64) (TTEntry, bool) {
	e := tt.entries[getKey(hash)]
	if e.filled && e.Hash == hash {
		return e, true
	}
	return TTEntry{}, false
}

// Insert stores an entry for hash, unconditionally overwriting whatever
// was there (depth-preferred replacement is ConditionallyInsert's job).
func (tt *TranspositionTable) Insert(hash uint64, depth int8, scoreType ScoreType, score, eval int16, best board.GenericMove) {
	tt.entries[getKey(hash)] = TTEntry{
		Hash:      hash,
		BestMove:  best,
		Depth:     depth,
		ScoreType: scoreType,
		Score:     score,
		Eval:      eval,
		filled:    true,
	}
}

// ConditionallyInsert stores an entry only if the slot is empty, belongs to
// a different position, or this search reached at least as deep as what's
// already there. When the existing entry is deeper and best is the zero
// move, the existing best move is preserved rather than overwritten with
// nothing, mirroring the Rust original's conditionally_insert.
func (tt *TranspositionTable) ConditionallyInsert(hash uint64, depth int8, scoreType ScoreType, score, eval int16, best board.GenericMove) {
	idx := getKey(hash)
	existing := tt.entries[idx]

	if existing.filled && existing.Hash == hash && existing.Depth >= depth && best == board.NullMove {
		best = existing.BestMove
	}

	if !existing.filled || existing.Hash != hash || depth >= existing.Depth {
		tt.entries[idx] = TTEntry{
			Hash:      hash,
			BestMove:  best,
			Depth:     depth,
			ScoreType: scoreType,
			Score:     score,
			Eval:      eval,
			filled:    true,
		}
	}
}

// Reset clears every slot. Called after every completed search by the
// engine driver, matching original_source/santorini_core/src/engine.rs's
// per-search table reset (the Santorini engine does not persist the table
// across independent searches the way the teacher's chess engine does).
func (tt *TranspositionTable) Reset() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Age resets the table only when the god matchup changes; called once per
// new position set by the driver before a search begins.
func (tt *TranspositionTable) Age(god1, god2 board.GodID) {
	if tt.haveGod && tt.god1 == god1 && tt.god2 == god2 {
		return
	}
	tt.Reset()
	tt.god1, tt.god2 = god1, god2
	tt.haveGod = true
}

// CountFilledEntries samples the table to estimate how full it is: it
// returns how many of the first 1000 slots are filled (a per-mille figure).
func (tt *TranspositionTable) CountFilledEntries() int {
	sampleSize := 1000
	if uint64(sampleSize) > TableSize {
		sampleSize = int(TableSize)
	}
	filled := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].filled {
			filled++
		}
	}
	return filled
}

// WinningScoreBuffer separates "mate in N" scores from the ordinary
// evaluation range; scores beyond it are assumed to encode a forced win
// and are renormalized relative to ply before entering/leaving the table.
const WinningScoreBuffer = 9000

// AdjustScoreToTT renormalizes a mate score found at `ply` plies from the
// search root into a ply-independent score suitable for storage.
func AdjustScoreToTT(score int, ply int) int {
	if score > WinningScoreBuffer {
		return score + ply
	}
	if score < -WinningScoreBuffer {
		return score - ply
	}
	return score
}

// AdjustScoreFromTT reverses AdjustScoreToTT when reading a stored score
// back in at `ply` plies from the root.
func AdjustScoreFromTT(score int, ply int) int {
	if score > WinningScoreBuffer {
		return score - ply
	}
	if score < -WinningScoreBuffer {
		return score + ply
	}
	return score
}
