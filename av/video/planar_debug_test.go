//go:build rawdatadebug

package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanarFrame_DebugPanicsOnDoubleRelease(t *testing.T) {
	f := newTestPlanar(t, VideoTypeI420, 16, 16)
	require.NoError(t, f.Release())

	assert.PanicsWithValue(t, "video: PlanarFrame released twice", func() { _ = f.Release() })
}

func TestPlanarFrame_DebugPanicsOnUseAfterRelease(t *testing.T) {
	f := newTestPlanar(t, VideoTypeI420, 16, 16)
	require.NoError(t, f.Release())

	assert.PanicsWithValue(t, "video: Width on released PlanarFrame", func() { _ = f.Width() })
	assert.Panics(t, func() { _ = f.Buffer(PlaneY) })
	assert.Panics(t, func() { _, _ = f.ConvertFrame(VideoTypeRGBA, 0, make([]byte, 16*16*4)) })

	live := newTestPlanar(t, VideoTypeI420, 16, 16)
	assert.Panics(t, func() { _, _ = live.CopyFrame(f) })
	assert.False(t, live.Released())
}
