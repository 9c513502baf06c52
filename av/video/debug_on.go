//go:build rawdatadebug

package video

import "fmt"

// Debug builds turn frame lifetime misuse into panics so it surfaces at the
// offending call site.

func reportUseAfterRelease(op string) {
	panic(fmt.Sprintf("video: %s on released PlanarFrame", op))
}

func reportDoubleRelease() {
	panic("video: PlanarFrame released twice")
}
