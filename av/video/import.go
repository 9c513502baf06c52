package video

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ConvertToI420 imports a contiguous buffer of srcType into a new I420
// frame. srcStride is the row stride in bytes of the first plane (0 means
// tightly packed). MJPG and the 16-bit RGB types cannot be imported.
func ConvertToI420(srcType VideoType, src []byte, srcStride, width, height int) (*PlanarFrame, error) {
	return importRegion(srcType, src, srcStride, width, height, 0, 0, width, height, VideoTypeI420)
}

// importRegion copies the w x h region at (left, top) of a srcWidth x
// srcHeight buffer into a new frame of dstType.
func importRegion(srcType VideoType, src []byte, srcStride, srcWidth, srcHeight, left, top, w, h int, dstType VideoType) (*PlanarFrame, error) {
	layout, err := newRawLayout(srcType, src, srcStride, srcWidth, srcHeight)
	if err != nil {
		return nil, err
	}
	if left < 0 || top < 0 || w <= 0 || h <= 0 || left+w > srcWidth || top+h > srcHeight {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d) in %dx%d",
			ErrInvalidCrop, w, h, left, top, srcWidth, srcHeight)
	}

	dst, err := NewPlanarFrame(dstType, w, h)
	if err != nil {
		return nil, err
	}
	fillPlanar(dst, layout, left, top)

	logrus.WithFields(logrus.Fields{
		"function": "ConvertToI420",
		"from":     srcType.String(),
		"to":       dstType.String(),
		"width":    w,
		"height":   h,
	}).Debug("Imported raw buffer")

	return dst, nil
}

// rotatedReader presents src rotated clockwise by rot degrees.
type rotatedReader struct {
	src  yuvReader
	w, h int // source dimensions
	rot  int
}

func (r rotatedReader) source(x, y int) (int, int) {
	switch r.rot {
	case 90:
		return y, r.h - 1 - x
	case 180:
		return r.w - 1 - x, r.h - 1 - y
	case 270:
		return r.w - 1 - y, x
	default:
		return x, y
	}
}

func (r rotatedReader) luma(x, y int) int {
	return r.src.luma(r.source(x, y))
}

func (r rotatedReader) chroma(x, y int) (int, int) {
	return r.src.chroma(r.source(x, y))
}

// Rotate returns a new I420 frame holding the image rotated clockwise by
// rotation degrees. Width and height swap for 90 and 270.
func (f *PlanarFrame) Rotate(rotation int) (*PlanarFrame, error) {
	if !f.live("Rotate") {
		return nil, ErrFrameReleased
	}
	if !ValidRotation(rotation) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, rotation)
	}
	if f.IsZeroSize() {
		return nil, fmt.Errorf("%w: zero-size frame", ErrInvalidFrame)
	}

	w, h := f.width, f.height
	if rotation == 90 || rotation == 270 {
		w, h = h, w
	}
	dst, err := NewPlanarFrame(VideoTypeI420, w, h)
	if err != nil {
		return nil, err
	}
	fillPlanar(dst, rotatedReader{src: f, w: f.width, h: f.height, rot: rotation}, 0, 0)
	dst.timestamp = f.timestamp
	dst.renderTimeMs = f.renderTimeMs
	return dst, nil
}
