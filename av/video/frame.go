package video

import (
	"fmt"

	"github.com/opd-ai/rawdata/limits"
)

// VideoFrame is the view of a frame handed to observers. Its buffers are
// borrowed for the duration of one callback and must not be retained.
//
// For FrameTypeYUV420 and FrameTypeYUV422 the three planes follow the
// chroma subsampling of the type. For FrameTypeRGBA all pixels live in
// YBuffer as R,G,B,A bytes and UBuffer/VBuffer are empty.
type VideoFrame struct {
	Type         FrameType
	Width        int
	Height       int
	YStride      int
	UStride      int
	VStride      int
	YBuffer      []byte
	UBuffer      []byte
	VBuffer      []byte
	Rotation     int   // clockwise degrees: 0, 90, 180 or 270
	RenderTimeMs int64 // wall clock
	AVSyncType   int   // reserved
}

// Validate checks the dimensions, strides and buffer sizes for Type.
func (vf *VideoFrame) Validate() error {
	if vf == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}
	if err := limits.ValidateVideoDimensions(vf.Width, vf.Height); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	if !ValidRotation(vf.Rotation) {
		return fmt.Errorf("%w: %d", ErrInvalidRotation, vf.Rotation)
	}

	switch vf.Type {
	case FrameTypeRGBA:
		if err := checkPlane("RGBA", vf.YBuffer, vf.YStride, vf.Width*4, vf.Height); err != nil {
			return err
		}
		if len(vf.UBuffer) != 0 || len(vf.VBuffer) != 0 {
			return fmt.Errorf("%w: RGBA frame carries chroma planes", ErrInvalidFrame)
		}
		return nil
	case FrameTypeYUV420, FrameTypeYUV422:
		rows := vf.Height
		if vf.Type == FrameTypeYUV420 {
			rows = (vf.Height + 1) / 2
		}
		cw := ChromaWidth(vf.Width)
		if err := checkPlane("Y", vf.YBuffer, vf.YStride, vf.Width, vf.Height); err != nil {
			return err
		}
		if err := checkPlane("U", vf.UBuffer, vf.UStride, cw, rows); err != nil {
			return err
		}
		return checkPlane("V", vf.VBuffer, vf.VStride, cw, rows)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, vf.Type)
	}
}

func checkPlane(name string, buf []byte, stride, width, rows int) error {
	if err := limits.ValidateStride(stride, width); err != nil {
		return fmt.Errorf("%w: plane %s: %w", ErrInvalidFrame, name, err)
	}
	if need := stride*(rows-1) + width; len(buf) < need {
		return fmt.Errorf("%w: plane %s holds %d bytes, need %d", ErrInvalidFrame, name, len(buf), need)
	}
	return nil
}

func (vf *VideoFrame) luma(x, y int) int {
	if vf.Type == FrameTypeRGBA {
		yy, _, _ := rgbToYUV(vf.rgbaAt(x, y))
		return yy
	}
	return int(vf.YBuffer[y*vf.YStride+x])
}

func (vf *VideoFrame) chroma(x, y int) (int, int) {
	if vf.Type == FrameTypeRGBA {
		_, u, v := rgbToYUV(vf.rgbaAt(x, y))
		return u, v
	}
	if vf.Type == FrameTypeYUV420 {
		y /= 2
	}
	x /= 2
	return int(vf.UBuffer[y*vf.UStride+x]), int(vf.VBuffer[y*vf.VStride+x])
}

func (vf *VideoFrame) rgbaAt(x, y int) (int, int, int) {
	p := vf.YBuffer[y*vf.YStride+x*4:]
	return int(p[0]), int(p[1]), int(p[2])
}

// NativeFrameType returns the observer layout matching a planar type
// without conversion.
func NativeFrameType(t VideoType) (FrameType, bool) {
	switch t {
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12:
		return FrameTypeYUV420, true
	case VideoTypeI422:
		return FrameTypeYUV422, true
	default:
		return 0, false
	}
}

// LendVideoFrame builds an observer view of pf in the requested layout.
//
// When format matches pf's native layout the view aliases pf's planes.
// Otherwise pf is converted into a scratch buffer first. The returned
// finish function must be called exactly once after the observer returns:
// with accept true it writes the observer's changes back into pf, with
// accept false it discards them.
func LendVideoFrame(pf *PlanarFrame, format FrameType, rotation int) (*VideoFrame, func(accept bool) error, error) {
	if !pf.live("LendVideoFrame") {
		return nil, nil, ErrFrameReleased
	}
	if pf.IsZeroSize() {
		return nil, nil, fmt.Errorf("%w: zero-size frame", ErrInvalidFrame)
	}
	if !ValidRotation(rotation) {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidRotation, rotation)
	}

	native, _ := NativeFrameType(pf.videoType)
	vf := &VideoFrame{
		Type:         format,
		Width:        pf.width,
		Height:       pf.height,
		Rotation:     rotation,
		RenderTimeMs: pf.renderTimeMs,
	}

	switch {
	case format == native:
		vf.attach(pf)
		y, u, v := vf.YBuffer, vf.UBuffer, vf.VBuffer
		return vf, func(accept bool) error {
			if !accept || (sameBacking(vf.YBuffer, y) && sameBacking(vf.UBuffer, u) && sameBacking(vf.VBuffer, v)) {
				return nil
			}
			return writeBack(pf, vf)
		}, nil

	case format == FrameTypeYUV420 || format == FrameTypeYUV422:
		scratchType := VideoTypeI420
		if format == FrameTypeYUV422 {
			scratchType = VideoTypeI422
		}
		scratch, err := NewPlanarFrame(scratchType, pf.width, pf.height)
		if err != nil {
			return nil, nil, err
		}
		if err := pf.ConvertInto(scratch); err != nil {
			_ = scratch.Release()
			return nil, nil, err
		}
		vf.attach(scratch)
		return vf, func(accept bool) error {
			defer scratch.Release()
			if !accept {
				return nil
			}
			return writeBack(pf, vf)
		}, nil

	case format == FrameTypeRGBA:
		buf := make([]byte, CalcBufferSize(VideoTypeRGBA, pf.width, pf.height))
		if _, err := pf.ConvertFrame(VideoTypeRGBA, 0, buf); err != nil {
			return nil, nil, err
		}
		vf.YStride = pf.width * 4
		vf.YBuffer = buf
		return vf, func(accept bool) error {
			if !accept {
				return nil
			}
			return writeBack(pf, vf)
		}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// attach points vf's planes at pf's storage.
func (vf *VideoFrame) attach(pf *PlanarFrame) {
	vf.YStride = pf.strides[PlaneY]
	vf.UStride = pf.strides[PlaneU]
	vf.VStride = pf.strides[PlaneV]
	vf.YBuffer = pf.planes[PlaneY]
	vf.UBuffer = pf.planes[PlaneU]
	vf.VBuffer = pf.planes[PlaneV]
}

func writeBack(pf *PlanarFrame, vf *VideoFrame) error {
	if err := vf.Validate(); err != nil {
		return err
	}
	if vf.Width != pf.width || vf.Height != pf.height {
		return fmt.Errorf("%w: observer resized %dx%d frame to %dx%d",
			ErrHeightMismatch, pf.width, pf.height, vf.Width, vf.Height)
	}
	if !pf.live("writeBack") {
		return ErrFrameReleased
	}
	fillPlanar(pf, vf, 0, 0)
	return nil
}

func sameBacking(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return &a[0] == &b[0]
}
