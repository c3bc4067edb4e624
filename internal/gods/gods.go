// Package gods is the plug-in registry of god powers: each god contributes
// a move generator, a make/unmake pair, and a small set of descriptor
// fields (win-mask restriction, build-mask restriction, movement
// restriction) that other gods' generators consult when computing the
// acting player's legal moves. The core engine (internal/engine) never
// switches on a god by name; it only ever calls through a StaticGod value
// fetched from this registry, so adding a new god never touches search,
// the move picker, or the transposition table.
package gods

import "github.com/hailam/santorini/internal/board"

// Move-generation flags, combined as a bitset and threaded through every
// generator call.
const (
	// StopOnMate halts generation as soon as one winning move is found.
	StopOnMate uint32 = 1 << 0
	// InteractWithKeySquares restricts generation to moves touching the
	// caller-supplied key-squares mask (used by quiescence-style callers
	// that only want moves near the opponent's threats).
	InteractWithKeySquares uint32 = 1 << 1
	// MateOnly restricts generation to winning moves only, scanning just
	// the workers able to reach a winning square this ply.
	MateOnly uint32 = 1 << 2
	// IncludeScore asks the generator to fill in each ScoredMove's lazy
	// ordering score; callers that only need legality (HasAnyMoves,
	// NextMoves) omit this to skip the extra work.
	IncludeScore uint32 = 1 << 3
)

// GenerateFn produces every legal move for player in state, subject to flags.
type GenerateFn func(state *board.BoardState, player board.Player, flags uint32, keySquares board.BitBoard) board.MoveList

// MakeFn applies m for player, returning the UndoInfo needed to reverse it.
type MakeFn func(state *board.BoardState, player board.Player, m board.GenericMove) board.UndoInfo

// UnmakeFn reverses a previously applied move.
type UnmakeFn func(state *board.BoardState, player board.Player, m board.GenericMove, undo board.UndoInfo)

// BuildMaskFn returns extra squares the opponent of a god may not build on,
// given that god's own workers. Most gods impose no such restriction.
type BuildMaskFn func(ownWorkers board.BitBoard) board.BitBoard

// StaticGod is the full descriptor for one god power. Instances are built
// once at init time and never mutated; the registry hands out pointers to
// them.
type StaticGod struct {
	ID   board.GodID
	Name string

	Generate GenerateFn
	Make     MakeFn
	Unmake   UnmakeFn

	// WinMask restricts where THIS god allows an opponent worker to win by
	// moving up to height 3; it is consulted as the mover's win_mask using
	// the god assigned to the player NOT moving (see move_helpers.rs's
	// get_generator_prelude_state: win_mask = other_god.win_mask). Gods
	// with no such restriction set this to board.MainSectionMask.
	WinMask board.BitBoard

	// BuildMask, likewise read off the non-moving player's god, forbids
	// the mover from building on the returned squares in addition to any
	// domed or occupied square.
	BuildMask BuildMaskFn

	// PreventsDownMovement, read off the non-moving player's god, forbids
	// the mover's workers from moving to a strictly lower height.
	PreventsDownMovement bool
}

var registry [board.MaxGodID]*StaticGod

// Register adds g to the static registry and its name to the FEN name
// table. Called from each god file's init().
func Register(g *StaticGod) {
	if registry[g.ID] != nil {
		panic("gods: duplicate GodID registered: " + g.Name)
	}
	registry[g.ID] = g
	board.RegisterGodName(g.Name, g.ID)
}

// Get returns the registered god for id, or nil if none is registered.
func Get(id board.GodID) *StaticGod {
	return registry[id]
}

// zeroBuildMask is the BuildMask implementation shared by every god in this
// package that imposes no additional build restriction.
func zeroBuildMask(board.BitBoard) board.BitBoard {
	return board.Empty
}
