package board

import "math/bits"

// BitBoard is a 32-bit mask over the 5x5 board. Bits 0..24 are board cells;
// bits 25..31 are reserved (in a packed Mortal move word they hold the build
// square and IsWinningMask, which mortalMoveMask strips off with MainSectionMask).
type BitBoard uint32

// Special masks.
const (
	Empty           BitBoard = 0
	MainSectionMask BitBoard = (1 << NumSquares) - 1
	OffSectionMask  BitBoard = ^MainSectionMask
)

// AsMask returns the single-bit mask for a square.
func AsMask(sq Square) BitBoard {
	return BitBoard(1) << BitBoard(sq)
}

// Get reports whether the bit at sq is set.
func (b BitBoard) Get(sq Square) bool {
	return b&AsMask(sq) != 0
}

// LSB returns the lowest-index set square. Caller must ensure b is non-empty.
func (b BitBoard) LSB() Square {
	return Square(bits.TrailingZeros32(uint32(b)))
}

// PopCount returns the number of set bits.
func (b BitBoard) PopCount() int {
	return bits.OnesCount32(uint32(b))
}

// IsEmpty reports whether no bits are set.
func (b BitBoard) IsEmpty() bool {
	return b == 0
}

// IsNotEmpty reports whether any bit is set.
func (b BitBoard) IsNotEmpty() bool {
	return b != 0
}

// Squares returns every set square, LSB first.
func (b BitBoard) Squares() []Square {
	result := make([]Square, 0, b.PopCount())
	for m := b; m != 0; {
		sq := m.LSB()
		result = append(result, sq)
		m &= m - 1
	}
	return result
}

// Pop returns the LSB square and the bitboard with that bit cleared.
func (b BitBoard) Pop() (Square, BitBoard) {
	sq := b.LSB()
	return sq, b & (b - 1)
}

// Static geometry tables, computed once at package init from the 5x5 grid.
var (
	// NeighborMap[s] is the 8-neighborhood of s (off-board bits never set).
	NeighborMap [NumSquares]BitBoard
	// InclusiveNeighborMap[s] is NeighborMap[s] plus s itself.
	InclusiveNeighborMap [NumSquares]BitBoard
	// DiagonalOnlyNeighborMap[s] is the 4 diagonal neighbors of s only.
	DiagonalOnlyNeighborMap [NumSquares]BitBoard
	// LowerSquaresExclusiveMask[s] has one bit set per square with index < s.
	LowerSquaresExclusiveMask [NumSquares]BitBoard
	// PushMapping[from][to] is the square directly behind "to" as seen along
	// the from->to axis, or NoSquare if that square would fall off the board.
	PushMapping [NumSquares][NumSquares]Square

	// PerimeterSpacesMask covers every square on the outer ring of the board.
	PerimeterSpacesMask BitBoard
	// MiddleSpacesMask is the complement of PerimeterSpacesMask within the board.
	MiddleSpacesMask BitBoard
)

func init() {
	initNeighborMaps()
	initLowerSquaresMask()
	initPushMapping()
	initRingMasks()
}

func inBounds(col, row int) bool {
	return col >= 0 && col < BoardWidth && row >= 0 && row < BoardWidth
}

func initNeighborMaps() {
	deltas := [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	diagDeltas := [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

	for sq := Square(0); sq < NumSquares; sq++ {
		col, row := sq.Col(), sq.Row()

		var n BitBoard
		for _, d := range deltas {
			c, r := col+d[0], row+d[1]
			if inBounds(c, r) {
				n |= AsMask(Square(r*BoardWidth + c))
			}
		}
		NeighborMap[sq] = n
		InclusiveNeighborMap[sq] = n | AsMask(sq)

		var dn BitBoard
		for _, d := range diagDeltas {
			c, r := col+d[0], row+d[1]
			if inBounds(c, r) {
				dn |= AsMask(Square(r*BoardWidth + c))
			}
		}
		DiagonalOnlyNeighborMap[sq] = dn
	}
}

func initLowerSquaresMask() {
	var mask BitBoard
	for sq := Square(0); sq < NumSquares; sq++ {
		LowerSquaresExclusiveMask[sq] = mask
		mask |= AsMask(sq)
	}
}

// initPushMapping fills PushMapping with the square "behind" to, extending
// the from->to direction by one more step. Used by harpies-style slide moves.
func initPushMapping() {
	for from := Square(0); from < NumSquares; from++ {
		for to := Square(0); to < NumSquares; to++ {
			if from == to {
				PushMapping[from][to] = NoSquare
				continue
			}
			fc, fr := from.Col(), from.Row()
			tc, tr := to.Col(), to.Row()
			dx, dy := tc-fc, tr-fr
			// Only a direct 8-neighbor direction has a well-defined push axis.
			if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
				PushMapping[from][to] = NoSquare
				continue
			}
			bc, br := tc+dx, tr+dy
			if inBounds(bc, br) {
				PushMapping[from][to] = Square(br*BoardWidth + bc)
			} else {
				PushMapping[from][to] = NoSquare
			}
		}
	}
}

func initRingMasks() {
	for sq := Square(0); sq < NumSquares; sq++ {
		col, row := sq.Col(), sq.Row()
		if col == 0 || col == BoardWidth-1 || row == 0 || row == BoardWidth-1 {
			PerimeterSpacesMask |= AsMask(sq)
		}
	}
	MiddleSpacesMask = MainSectionMask &^ PerimeterSpacesMask
}
