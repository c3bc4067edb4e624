package gods

import "github.com/hailam/santorini/internal/board"

// HadesID reuses Mortal's generator and make/unmake entirely; Hades is a
// purely restrictive power, so it needs no move-encoding or scoring logic
// of its own (see original_source/santorini_core/src/gods/hades.rs, which
// likewise builds on mortal_move_gen via a macro and only flips
// `with_is_preventing_down()`).
const HadesID board.GodID = 1

func init() {
	Register(&StaticGod{
		ID:                   HadesID,
		Name:                 "Hades",
		Generate:             mortalGenerate,
		Make:                 mortalMake,
		Unmake:               mortalUnmake,
		WinMask:              board.MainSectionMask,
		BuildMask:            zeroBuildMask,
		PreventsDownMovement: true,
	})
}
