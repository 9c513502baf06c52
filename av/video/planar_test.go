package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewPlanarFrame(t *testing.T) {
	tests := []struct {
		name    string
		vt      VideoType
		width   int
		height  int
		chromaH int
	}{
		{"I420 even", VideoTypeI420, 640, 480, 240},
		{"I420 odd", VideoTypeI420, 33, 17, 9},
		{"YV12", VideoTypeYV12, 320, 240, 120},
		{"IYUV", VideoTypeIYUV, 16, 16, 8},
		{"I422", VideoTypeI422, 64, 48, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewPlanarFrame(tt.vt, tt.width, tt.height)
			require.NoError(t, err)
			defer f.Release()

			cw := (tt.width + 1) / 2
			assert.Equal(t, tt.vt, f.VideoType())
			assert.Equal(t, tt.width, f.Width())
			assert.Equal(t, tt.height, f.Height())
			assert.Equal(t, tt.width, f.Stride(PlaneY))
			assert.Equal(t, cw, f.Stride(PlaneU))
			assert.Equal(t, cw, f.Stride(PlaneV))
			assert.Equal(t, tt.width*tt.height, f.AllocatedSize(PlaneY))
			assert.Equal(t, cw*tt.chromaH, f.AllocatedSize(PlaneU))
			assert.Equal(t, cw*tt.chromaH, f.AllocatedSize(PlaneV))
			assert.False(t, f.IsZeroSize())
		})
	}
}

func TestNewPlanarFrame_Errors(t *testing.T) {
	_, err := NewPlanarFrame(VideoTypeRGBA, 16, 16)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NewPlanarFrame(VideoTypeI420, 0, 16)
	assert.ErrorIs(t, err, ErrInvalidFrame)

	_, err = NewPlanarFrameWithStrides(VideoTypeI420, 64, 64, 32, 32, 32)
	assert.ErrorIs(t, err, ErrInvalidFrame)
}

func TestNewPlanarFrameWithStrides(t *testing.T) {
	f, err := NewPlanarFrameWithStrides(VideoTypeI420, 100, 50, 128, 64, 64)
	require.NoError(t, err)

	assert.Equal(t, 128, f.Stride(PlaneY))
	assert.GreaterOrEqual(t, f.AllocatedSize(PlaneY), f.Stride(PlaneY)*f.Height())
	assert.GreaterOrEqual(t, f.AllocatedSize(PlaneU), f.Stride(PlaneU)*25)
}

func TestNewPlanarFrameFromPlanes(t *testing.T) {
	y := make([]byte, 4*4)
	u := make([]byte, 2*2)
	v := make([]byte, 2*2)
	y[5], u[1], v[2] = 10, 20, 30

	f, err := NewPlanarFrameFromPlanes(VideoTypeI420, 4, 4, y, u, v, 4, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, byte(10), f.Buffer(PlaneY)[5])
	assert.Equal(t, byte(20), f.Buffer(PlaneU)[1])
	assert.Equal(t, byte(30), f.Buffer(PlaneV)[2])

	y[5] = 99
	assert.Equal(t, byte(10), f.Buffer(PlaneY)[5], "planes must be copied")

	_, err = NewPlanarFrameFromPlanes(VideoTypeI420, 4, 4, y, u[:3], v, 4, 2, 2)
	assert.ErrorIs(t, err, ErrInvalidFrame)
}

func TestPlanarFrame_IsZeroSize(t *testing.T) {
	zero := NewZeroSizeFrame(VideoTypeI420)
	assert.True(t, zero.IsZeroSize())
	assert.Equal(t, 0, zero.AllocatedSize(PlaneY))
	assert.Equal(t, VideoTypeI420, zero.VideoType())

	f := newTestPlanar(t, VideoTypeI420, 16, 16)
	assert.False(t, f.IsZeroSize())
}

func TestPlanarFrame_Buffer_InvalidPlane(t *testing.T) {
	f := newTestPlanar(t, VideoTypeI420, 16, 16)
	assert.Nil(t, f.Buffer(NumPlanes))
	assert.Nil(t, f.Buffer(PlaneType(-1)))
	assert.Equal(t, 0, f.Stride(NumPlanes))
	assert.Equal(t, 0, f.AllocatedSize(NumPlanes))
}

func TestPlanarFrame_Timestamps(t *testing.T) {
	f := newTestPlanar(t, VideoTypeI420, 16, 16)

	f.SetTimestamp(90000)
	f.SetRenderTimeMs(1234)
	assert.Equal(t, uint32(90000), f.Timestamp())
	assert.Equal(t, int64(1234), f.RenderTimeMs())

	f.SetTimestamp(1)
	assert.Equal(t, int64(1234), f.RenderTimeMs(), "clocks are independent")
}

func TestPlanarFrame_CopyFrame(t *testing.T) {
	src := newTestPlanar(t, VideoTypeI420, 64, 48)
	src.SetTimestamp(4500)
	src.SetRenderTimeMs(50)

	dst, err := src.CopyFrame(nil)
	require.NoError(t, err)

	assert.Equal(t, src.Width(), dst.Width())
	assert.Equal(t, src.Height(), dst.Height())
	assert.Equal(t, src.Timestamp(), dst.Timestamp())
	assert.Equal(t, src.RenderTimeMs(), dst.RenderTimeMs())
	for p := PlaneY; p < NumPlanes; p++ {
		assert.Equal(t, src.Buffer(p), dst.Buffer(p), "plane %s", p)
	}

	// The copy is independent and releases on its own
	dst.Buffer(PlaneY)[0] = 0
	assert.NotEqual(t, byte(0), src.Buffer(PlaneY)[0])
	require.NoError(t, src.Release())
	assert.Equal(t, 64, dst.Width())
	require.NoError(t, dst.Release())
}

func TestPlanarFrame_CopyFrame_ReusesCapacity(t *testing.T) {
	src := newTestPlanar(t, VideoTypeI420, 32, 32)
	dst := newTestPlanar(t, VideoTypeI422, 64, 64)
	before := &dst.Buffer(PlaneY)[0]

	got, err := src.CopyFrame(dst)
	require.NoError(t, err)

	assert.Same(t, dst, got)
	assert.Same(t, before, &got.Buffer(PlaneY)[0])
	assert.Equal(t, VideoTypeI420, got.VideoType())
	assert.Equal(t, 32, got.Width())
	assert.Equal(t, src.Buffer(PlaneU), got.Buffer(PlaneU))
}

func TestPlanarFrame_CopyFrame_GrowsDestination(t *testing.T) {
	src := newTestPlanar(t, VideoTypeI420, 64, 64)
	dst := newTestPlanar(t, VideoTypeI420, 16, 16)

	got, err := src.CopyFrame(dst)
	require.NoError(t, err)
	assert.Equal(t, 64*64, got.AllocatedSize(PlaneY))
	assert.Equal(t, src.Buffer(PlaneY), got.Buffer(PlaneY))
}

func TestPlanarFrame_CrossGoroutineReaders(t *testing.T) {
	f := newTestPlanar(t, VideoTypeI420, 64, 64)
	want := CalcBufferSize(VideoTypeRGBA, 64, 64)

	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			buf := make([]byte, want)
			_, err := f.ConvertFrame(VideoTypeRGBA, 0, buf)
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, f.Release())
}
