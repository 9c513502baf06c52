package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lendTest(t *testing.T, format FrameType) *VideoFrame {
	t.Helper()
	pf := newTestPlanar(t, VideoTypeI420, 8, 8)
	vf, _, err := LendVideoFrame(pf, format, 0)
	require.NoError(t, err)
	return vf
}

func TestAdjustBrightness(t *testing.T) {
	tests := []struct {
		name       string
		adjustment int
		in         byte
		want       byte
	}{
		{"brighten", 20, 100, 120},
		{"darken", -20, 100, 80},
		{"clamp high", 300, 100, 255},
		{"clamp low", -300, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vf := lendTest(t, FrameTypeYUV420)
			fill(vf.YBuffer, tt.in)
			u := append([]byte(nil), vf.UBuffer...)

			require.NoError(t, AdjustBrightness(vf, tt.adjustment))
			assert.Equal(t, tt.want, vf.YBuffer[0])
			assert.Equal(t, tt.want, vf.YBuffer[63])
			assert.Equal(t, u, vf.UBuffer, "chroma untouched")
		})
	}
}

func TestAdjustBrightness_RGBAKeepsAlpha(t *testing.T) {
	vf := lendTest(t, FrameTypeRGBA)
	fill(vf.YBuffer, 100)

	require.NoError(t, AdjustBrightness(vf, 50))
	assert.Equal(t, []byte{150, 150, 150, 100}, vf.YBuffer[:4])
}

func TestGrayscale(t *testing.T) {
	vf := lendTest(t, FrameTypeYUV420)
	require.NoError(t, Grayscale(vf))
	for _, b := range vf.UBuffer {
		assert.Equal(t, byte(128), b)
	}
	for _, b := range vf.VBuffer {
		assert.Equal(t, byte(128), b)
	}

	rgba := lendTest(t, FrameTypeRGBA)
	require.NoError(t, Grayscale(rgba))
	assert.Equal(t, rgba.YBuffer[0], rgba.YBuffer[1])
	assert.Equal(t, rgba.YBuffer[1], rgba.YBuffer[2])
}

func TestEffects_InvalidFrame(t *testing.T) {
	assert.ErrorIs(t, AdjustBrightness(&VideoFrame{}, 10), ErrInvalidFrame)
	assert.ErrorIs(t, Grayscale(nil), ErrInvalidFrame)
}
