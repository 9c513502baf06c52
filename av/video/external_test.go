package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newExternalI420 builds a raw I420 buffer whose luma encodes the pixel
// position so crops can be checked.
func newExternalI420(width, height int) *ExternalVideoFrame {
	buf := make([]byte, CalcBufferSize(VideoTypeI420, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf[y*width+x] = byte(16 + (x+3*y)%200)
		}
	}
	for i := width * height; i < len(buf); i++ {
		buf[i] = 128
	}
	return &ExternalVideoFrame{
		Type:   BufferTypeRawData,
		Format: PixelI420,
		Buffer: buf,
		Stride: width,
		Height: height,
	}
}

func TestExternalVideoFrame_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ef *ExternalVideoFrame)
		want   error
	}{
		{"valid", func(ef *ExternalVideoFrame) {}, nil},
		{"explicit full crop", func(ef *ExternalVideoFrame) { ef.CropRight, ef.CropBottom = 16, 8 }, nil},
		{"texture buffer", func(ef *ExternalVideoFrame) { ef.Type = 2 }, ErrUnsupportedFormat},
		{"unknown format", func(ef *ExternalVideoFrame) { ef.Format = PixelUnknown }, ErrUnsupportedFormat},
		{"bad rotation", func(ef *ExternalVideoFrame) { ef.Rotation = 10 }, ErrInvalidRotation},
		{"zero stride", func(ef *ExternalVideoFrame) { ef.Stride = 0 }, ErrInvalidFrame},
		{"crop past edge", func(ef *ExternalVideoFrame) { ef.CropRight, ef.CropBottom = 17, 8 }, ErrInvalidCrop},
		{"empty crop", func(ef *ExternalVideoFrame) { ef.CropLeft, ef.CropRight, ef.CropBottom = 4, 4, 8 }, ErrInvalidCrop},
		{"short buffer", func(ef *ExternalVideoFrame) { ef.Buffer = ef.Buffer[:100] }, ErrInvalidFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ef := newExternalI420(16, 8)
			tt.mutate(ef)
			err := ef.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExternalVideoFrame_ToPlanarFrame_FullCrop(t *testing.T) {
	ef := newExternalI420(640, 480)
	ef.CropRight, ef.CropBottom = 640, 480

	pf, err := ef.ToPlanarFrame()
	require.NoError(t, err)
	defer pf.Release()

	assert.Equal(t, VideoTypeI420, pf.VideoType())
	assert.Equal(t, 640, pf.Width())
	assert.Equal(t, 480, pf.Height())
	assert.Equal(t, ef.Buffer[:640*480], pf.Buffer(PlaneY))
}

func TestExternalVideoFrame_ToPlanarFrame_Crop(t *testing.T) {
	ef := newExternalI420(16, 8)
	ef.CropLeft, ef.CropTop, ef.CropRight, ef.CropBottom = 2, 2, 10, 6

	pf, err := ef.ToPlanarFrame()
	require.NoError(t, err)

	assert.Equal(t, 8, pf.Width())
	assert.Equal(t, 4, pf.Height())
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, ef.Buffer[(y+2)*16+x+2], pf.Buffer(PlaneY)[y*8+x])
		}
	}
}

func TestExternalVideoFrame_ToPlanarFrame_Formats(t *testing.T) {
	ref := newExternalI420(8, 4)
	want, err := ref.ToPlanarFrame()
	require.NoError(t, err)

	nv12 := make([]byte, CalcBufferSize(VideoTypeNV12, 8, 4))
	_, err = want.ConvertFrame(VideoTypeNV12, 0, nv12)
	require.NoError(t, err)
	i422 := make([]byte, CalcBufferSize(VideoTypeI422, 8, 4))
	_, err = want.ConvertFrame(VideoTypeI422, 0, i422)
	require.NoError(t, err)

	for _, tt := range []struct {
		format PixelFormat
		buf    []byte
	}{
		{PixelNV12, nv12},
		{PixelI422, i422},
	} {
		t.Run(tt.format.String(), func(t *testing.T) {
			ef := &ExternalVideoFrame{Type: BufferTypeRawData, Format: tt.format, Buffer: tt.buf, Stride: 8, Height: 4}
			got, err := ef.ToPlanarFrame()
			require.NoError(t, err)
			for p := PlaneY; p < NumPlanes; p++ {
				assert.Equal(t, want.Buffer(p), got.Buffer(p), "plane %s", p)
			}
		})
	}
}

func TestExternalVideoFrame_ToPlanarFrame_BGRA(t *testing.T) {
	buf := make([]byte, 4*4*2)
	for i := range buf {
		buf[i] = 255
	}
	ef := &ExternalVideoFrame{Type: BufferTypeRawData, Format: PixelBGRA, Buffer: buf, Stride: 4, Height: 2}

	pf, err := ef.ToPlanarFrame()
	require.NoError(t, err)
	assert.Equal(t, 4, pf.Width())
	assert.Equal(t, byte(235), pf.Buffer(PlaneY)[0])
}

func TestPixelFormat_Values(t *testing.T) {
	assert.Equal(t, 1, int(PixelI420))
	assert.Equal(t, 2, int(PixelBGRA))
	assert.Equal(t, 8, int(PixelNV12))
	assert.Equal(t, 16, int(PixelI422))
	assert.Equal(t, VideoTypeUnknown, PixelUnknown.VideoType())
}
