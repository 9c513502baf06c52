package video

import "fmt"

// BufferType identifies how an ExternalVideoFrame carries its pixels.
type BufferType int

// BufferTypeRawData is the only supported buffer type: a contiguous byte slice.
const BufferTypeRawData BufferType = 1

// PixelFormat is the layout of an ExternalVideoFrame buffer.
type PixelFormat int

const (
	PixelUnknown PixelFormat = 0
	PixelI420    PixelFormat = 1
	PixelBGRA    PixelFormat = 2
	PixelNV12    PixelFormat = 8
	PixelI422    PixelFormat = 16
)

func (p PixelFormat) String() string {
	switch p {
	case PixelI420:
		return "I420"
	case PixelBGRA:
		return "BGRA"
	case PixelNV12:
		return "NV12"
	case PixelI422:
		return "I422"
	default:
		return "Unknown"
	}
}

// VideoType returns the VideoType with the same byte layout.
func (p PixelFormat) VideoType() VideoType {
	switch p {
	case PixelI420:
		return VideoTypeI420
	case PixelBGRA:
		return VideoTypeBGRA
	case PixelNV12:
		return VideoTypeNV12
	case PixelI422:
		return VideoTypeI422
	default:
		return VideoTypeUnknown
	}
}

// ExternalVideoFrame is a frame pushed by an application that owns the
// capture device. Stride is in pixels and Timestamp in milliseconds. The
// crop rectangle runs from (CropLeft, CropTop) to (CropRight, CropBottom);
// an all-zero rectangle selects the whole buffer.
//
// The buffer belongs to the caller and is only read during the push.
type ExternalVideoFrame struct {
	Type       BufferType
	Format     PixelFormat
	Buffer     []byte
	Stride     int
	Height     int
	CropLeft   int
	CropTop    int
	CropRight  int
	CropBottom int
	Rotation   int
	Timestamp  int64
}

// CropRect returns the effective crop rectangle.
func (ef *ExternalVideoFrame) CropRect() (left, top, right, bottom int) {
	if ef.CropLeft == 0 && ef.CropTop == 0 && ef.CropRight == 0 && ef.CropBottom == 0 {
		return 0, 0, ef.Stride, ef.Height
	}
	return ef.CropLeft, ef.CropTop, ef.CropRight, ef.CropBottom
}

// byteStride returns the first plane stride in bytes.
func (ef *ExternalVideoFrame) byteStride() int {
	if ef.Format == PixelBGRA {
		return ef.Stride * 4
	}
	return ef.Stride
}

// Validate checks the buffer type, format, rotation, crop rectangle and
// buffer size.
func (ef *ExternalVideoFrame) Validate() error {
	if ef == nil {
		return fmt.Errorf("%w: nil external frame", ErrInvalidFrame)
	}
	if ef.Type != BufferTypeRawData {
		return fmt.Errorf("%w: buffer type %d", ErrUnsupportedFormat, ef.Type)
	}
	if ef.Format.VideoType() == VideoTypeUnknown {
		return fmt.Errorf("%w: pixel format %d", ErrUnsupportedFormat, ef.Format)
	}
	if !ValidRotation(ef.Rotation) {
		return fmt.Errorf("%w: %d", ErrInvalidRotation, ef.Rotation)
	}
	if ef.Stride <= 0 || ef.Height <= 0 {
		return fmt.Errorf("%w: stride %d height %d", ErrInvalidFrame, ef.Stride, ef.Height)
	}

	left, top, right, bottom := ef.CropRect()
	if left < 0 || top < 0 || right > ef.Stride || bottom > ef.Height || left >= right || top >= bottom {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) in %dx%d",
			ErrInvalidCrop, left, top, right, bottom, ef.Stride, ef.Height)
	}

	t := ef.Format.VideoType()
	if need := layoutSize(t, ef.byteStride(), ef.Height); len(ef.Buffer) < need {
		return fmt.Errorf("%w: %s %dx%d needs %d bytes, got %d",
			ErrInvalidFrame, ef.Format, ef.Stride, ef.Height, need, len(ef.Buffer))
	}
	return nil
}

// ToPlanarFrame validates the frame and copies its crop rectangle into a new
// I420 frame. The caller owns the result and must Release it.
func (ef *ExternalVideoFrame) ToPlanarFrame() (*PlanarFrame, error) {
	if err := ef.Validate(); err != nil {
		return nil, err
	}
	left, top, right, bottom := ef.CropRect()
	return importRegion(ef.Format.VideoType(), ef.Buffer, ef.byteStride(), ef.Stride, ef.Height,
		left, top, right-left, bottom-top, VideoTypeI420)
}
