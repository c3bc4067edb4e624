package board

import "fmt"

// GenericMove is a god-specific packed 32-bit move. Bit 31 marks a winning
// move (the move, once applied, sets the mover's winner bit); the remaining
// bits are interpreted by the owning god's encode/decode helpers. The type
// is intentionally opaque here: each god package (see internal/gods) owns
// the bit layout of its own moves and is the only code that decodes them.
type GenericMove uint32

// IsWinningMask is the sign bit of the packed move word.
const IsWinningMask GenericMove = 1 << 31

// NullMove is the dedicated encoding for "no move".
const NullMove GenericMove = 0

// IsWinning reports whether applying this move sets the winner bit.
func (m GenericMove) IsWinning() bool {
	return m&IsWinningMask != 0
}

// WithWinning returns m with the winning flag set.
func (m GenericMove) WithWinning() GenericMove {
	return m | IsWinningMask
}

// Data returns the move payload with the winning flag masked off, i.e. the
// bits a god's decoder should interpret.
func (m GenericMove) Data() uint32 {
	return uint32(m &^ IsWinningMask)
}

// MoveScore is an 8-bit lazy-ordering score carried alongside a GenericMove.
// It never travels inside the packed move word; ScoredMove pairs the two.
type MoveScore uint8

// Sentinel scores used by the move picker (spec.md section 4.5/4.4).
const (
	ScoreNonImprovingSentinel MoveScore = 128
	ScoreQuiet                MoveScore = ScoreNonImprovingSentinel
	ScoreImproving            MoveScore = 180
	ScoreCheck                MoveScore = 220
	ScoreWinning              MoveScore = 255
)

// ScoredMove pairs a GenericMove with its lazy-ordering score. Equality for
// move-identity purposes (TT move match, killer match) only ever compares
// the Action field.
type ScoredMove struct {
	Action GenericMove
	Score  MoveScore
}

// NewUnscoredMove builds a ScoredMove with a zero score (used when callers
// did not request INCLUDE_SCORE).
func NewUnscoredMove(action GenericMove) ScoredMove {
	return ScoredMove{Action: action}
}

// NewWinningMove builds a ScoredMove for a move that wins outright.
func NewWinningMove(action GenericMove) ScoredMove {
	return ScoredMove{Action: action.WithWinning(), Score: ScoreWinning}
}

// NewCheckingMove builds a ScoredMove for a move that creates an immediate threat.
func NewCheckingMove(action GenericMove) ScoredMove {
	return ScoredMove{Action: action, Score: ScoreCheck}
}

// NewImprovingMove builds a ScoredMove for a move that raises the mover's height.
func NewImprovingMove(action GenericMove) ScoredMove {
	return ScoredMove{Action: action, Score: ScoreImproving}
}

// NewNonImprovingMove builds a ScoredMove for a quiet move.
func NewNonImprovingMove(action GenericMove) ScoredMove {
	return ScoredMove{Action: action, Score: ScoreNonImprovingSentinel}
}

// IsWinning reports whether the wrapped move wins outright.
func (sm ScoredMove) IsWinning() bool {
	return sm.Action.IsWinning()
}

func (m GenericMove) String() string {
	if m == NullMove {
		return "0000"
	}
	return fmt.Sprintf("%#08x", uint32(m))
}

// MoveList is a fixed-capacity move buffer, mirroring the search hot path's
// need to avoid per-node heap allocation. MaxMoves comfortably covers the
// widest generator output observed across god variants (two workers, up to
// 8 destinations, up to 8 builds each, plus a handful of winning moves).
const MaxMoves = 384

type MoveList struct {
	moves [MaxMoves]ScoredMove
	count int
}

func (ml *MoveList) Add(sm ScoredMove) {
	ml.moves[ml.count] = sm
	ml.count++
}

func (ml *MoveList) Len() int {
	return ml.count
}

func (ml *MoveList) Get(i int) ScoredMove {
	return ml.moves[i]
}

func (ml *MoveList) Set(i int, sm ScoredMove) {
	ml.moves[i] = sm
}

func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

func (ml *MoveList) Clear() {
	ml.count = 0
}

func (ml *MoveList) Slice() []ScoredMove {
	return ml.moves[:ml.count]
}

// UndoInfo captures everything make/unmake needs to exactly restore a
// BoardState after a move, without re-deriving it from the move alone
// (height-map layering and god-data deltas are not always self-inverse to
// decode from the move bits; callers always pass the UndoInfo make()
// produced).
type UndoInfo struct {
	Heights    [4]BitBoard
	Workers    [2]BitBoard
	GodData    [2]uint32
	Player     Player
	Winner     Player
	HasWinner  bool
	Hash       uint64
}
