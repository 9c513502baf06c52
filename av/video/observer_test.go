package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// bareObserver implements only the required methods.
type bareObserver struct{}

func (bareObserver) OnCaptureVideoFrame(*VideoFrame) bool        { return true }
func (bareObserver) OnRenderVideoFrame(uint32, *VideoFrame) bool { return true }

func TestObserverDefaults(t *testing.T) {
	var o Observer = bareObserver{}

	assert.True(t, PreEncode(o, &VideoFrame{}))
	assert.Equal(t, FrameTypeYUV420, FormatPreference(o))
	assert.False(t, RotationApplied(o))
	assert.False(t, MirrorApplied(o))
	assert.False(t, SmoothRenderingEnabled(o))
}

func TestObserverFuncs(t *testing.T) {
	var renderedUID uint32
	o := ObserverFuncs{
		PreEncode: func(*VideoFrame) bool { return false },
		Render: func(uid uint32, _ *VideoFrame) bool {
			renderedUID = uid
			return true
		},
		Format:          FrameTypeRGBA,
		ApplyRotation:   true,
		SmoothRendering: true,
	}

	assert.True(t, o.OnCaptureVideoFrame(&VideoFrame{}), "nil func accepts")
	assert.False(t, PreEncode(o, &VideoFrame{}))
	assert.True(t, o.OnRenderVideoFrame(7, &VideoFrame{}))
	assert.Equal(t, uint32(7), renderedUID)
	assert.Equal(t, FrameTypeRGBA, FormatPreference(o))
	assert.True(t, RotationApplied(o))
	assert.False(t, MirrorApplied(o))
	assert.True(t, SmoothRenderingEnabled(o))
}
