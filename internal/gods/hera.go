package gods

import "github.com/hailam/santorini/internal/board"

// HeraID likewise reuses Mortal's generator wholesale. Hera's power
// restricts her OPPONENT's winning condition, which is why her WinMask is
// read off her own StaticGod but applied by the mover's generator when the
// mover's opponent is Hera (see gods.go's doc comment on StaticGod.WinMask,
// and original_source/santorini_core/src/gods/hera.rs's
// `with_win_mask(MIDDLE_SPACES_MASK)`): an opponent facing Hera can only
// win by moving up to level 3 on one of the board's middle (non-perimeter)
// squares.
const HeraID board.GodID = 2

func init() {
	Register(&StaticGod{
		ID:        HeraID,
		Name:      "Hera",
		Generate:  mortalGenerate,
		Make:      mortalMake,
		Unmake:    mortalUnmake,
		WinMask:   board.MiddleSpacesMask,
		BuildMask: zeroBuildMask,
	})
}
