package video

import "image"

// Image returns an image.YCbCr view sharing the frame's planes, or nil for
// a released or zero-size frame and for frames whose U and V strides
// differ. The view is invalid after Release.
func (f *PlanarFrame) Image() *image.YCbCr {
	if !f.live("Image") || f.IsZeroSize() || f.strides[PlaneU] != f.strides[PlaneV] {
		return nil
	}
	ratio := image.YCbCrSubsampleRatio420
	if !f.videoType.verticalSubsampled() {
		ratio = image.YCbCrSubsampleRatio422
	}
	return &image.YCbCr{
		Y:              f.planes[PlaneY],
		Cb:             f.planes[PlaneU],
		Cr:             f.planes[PlaneV],
		YStride:        f.strides[PlaneY],
		CStride:        f.strides[PlaneU],
		SubsampleRatio: ratio,
		Rect:           image.Rect(0, 0, f.width, f.height),
	}
}
