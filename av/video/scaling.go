package video

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Scaler resizes planar frames.
//
// Scaling uses bilinear interpolation on each plane and always produces
// I420 output, so 4:2:2 sources are converted first.
type Scaler struct {
	// No fields needed for stateless scaling operations
}

// NewScaler creates a new video frame scaler.
func NewScaler() *Scaler {
	return &Scaler{}
}

// Scale resizes a planar frame to the specified dimensions.
//
// Parameters:
//   - frame: Source frame to scale
//   - targetWidth: Target width (must be even and >= 16)
//   - targetHeight: Target height (must be even and >= 16)
//
// Returns:
//   - *PlanarFrame: New I420 frame owned by the caller
//   - error: Any error that occurred during scaling
func (s *Scaler) Scale(frame *PlanarFrame, targetWidth, targetHeight int) (*PlanarFrame, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: source frame cannot be nil", ErrInvalidFrame)
	}
	if !frame.live("Scale") {
		return nil, ErrFrameReleased
	}
	if frame.IsZeroSize() {
		return nil, fmt.Errorf("%w: zero-size frame", ErrInvalidFrame)
	}

	if targetWidth%2 != 0 || targetHeight%2 != 0 {
		return nil, fmt.Errorf("%w: target dimensions must be even for I420: %dx%d",
			ErrInvalidFrame, targetWidth, targetHeight)
	}
	if targetWidth < 16 || targetHeight < 16 {
		return nil, fmt.Errorf("%w: target dimensions too small: %dx%d (minimum 16x16)",
			ErrInvalidFrame, targetWidth, targetHeight)
	}

	src := frame
	if !frame.videoType.verticalSubsampled() {
		scratch, err := NewPlanarFrame(VideoTypeI420, frame.width, frame.height)
		if err != nil {
			return nil, err
		}
		defer scratch.Release()
		if err := frame.ConvertInto(scratch); err != nil {
			return nil, err
		}
		src = scratch
	}

	result, err := NewPlanarFrame(VideoTypeI420, targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}
	result.timestamp = frame.timestamp
	result.renderTimeMs = frame.renderTimeMs

	// Same dimensions: plain copy of the 4:2:0 planes
	if frame.width == targetWidth && frame.height == targetHeight {
		fillPlanar(result, src, 0, 0)
		return result, nil
	}

	for p := PlaneY; p < NumPlanes; p++ {
		s.scalePlane(src.planes[p], src.planeWidth(p), src.planeRows(p), src.strides[p],
			result.planes[p], result.planeWidth(p), result.planeRows(p), result.strides[p])
	}

	logrus.WithFields(logrus.Fields{
		"function": "Scale",
		"from":     fmt.Sprintf("%dx%d", frame.width, frame.height),
		"to":       fmt.Sprintf("%dx%d", targetWidth, targetHeight),
	}).Debug("Scaled frame")

	return result, nil
}

// scalePlane scales a single plane using bilinear interpolation.
// Both planes are already known to hold stride*height bytes.
func (s *Scaler) scalePlane(src []byte, srcWidth, srcHeight, srcStride int,
	dst []byte, dstWidth, dstHeight, dstStride int,
) {
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := 0; y < dstHeight; y++ {
		srcY := float64(y) * yRatio
		y1 := int(srcY)
		y2 := min(y1+1, srcHeight-1)
		fy := srcY - float64(y1)

		for x := 0; x < dstWidth; x++ {
			srcX := float64(x) * xRatio
			x1 := int(srcX)
			x2 := min(x1+1, srcWidth-1)
			fx := srcX - float64(x1)

			p11 := float64(src[y1*srcStride+x1])
			p12 := float64(src[y1*srcStride+x2])
			p21 := float64(src[y2*srcStride+x1])
			p22 := float64(src[y2*srcStride+x2])

			top := p11*(1-fx) + p12*fx
			bottom := p21*(1-fx) + p22*fx
			pixel := top*(1-fy) + bottom*fy

			dst[y*dstStride+x] = byte(pixel + 0.5) // Round to nearest
		}
	}
}

// IsScalingRequired checks if scaling is needed for given dimensions.
func (s *Scaler) IsScalingRequired(srcWidth, srcHeight, dstWidth, dstHeight int) bool {
	return srcWidth != dstWidth || srcHeight != dstHeight
}
