package video

import (
	"fmt"
	"sync/atomic"

	"github.com/opd-ai/rawdata/limits"
	"github.com/sirupsen/logrus"
)

// PlanarFrame is an owned planar video buffer. It is created by the
// pipeline or by CopyFrame, handed to renderers, and destroyed exactly once
// with Release. A PlanarFrame may cross goroutines; concurrent readers are
// safe as long as no goroutine mutates plane contents at the same time.
type PlanarFrame struct {
	videoType    VideoType
	width        int
	height       int
	planes       [NumPlanes][]byte
	strides      [NumPlanes]int
	timestamp    uint32
	renderTimeMs int64
	released     atomic.Bool
}

// NewPlanarFrame allocates a tightly packed frame of the given planar type.
func NewPlanarFrame(t VideoType, width, height int) (*PlanarFrame, error) {
	cw := ChromaWidth(width)
	return NewPlanarFrameWithStrides(t, width, height, width, cw, cw)
}

// NewPlanarFrameWithStrides allocates a frame whose rows are padded to the
// given per-plane strides in bytes.
func NewPlanarFrameWithStrides(t VideoType, width, height, strideY, strideU, strideV int) (*PlanarFrame, error) {
	if err := validateLayout(t, width, height, [NumPlanes]int{strideY, strideU, strideV}); err != nil {
		return nil, err
	}

	f := &PlanarFrame{
		videoType: t,
		width:     width,
		height:    height,
		strides:   [NumPlanes]int{strideY, strideU, strideV},
	}
	for p := PlaneY; p < NumPlanes; p++ {
		f.planes[p] = make([]byte, f.strides[p]*f.planeRows(p))
	}
	return f, nil
}

// NewPlanarFrameFromPlanes builds a frame by copying caller-owned plane data.
// Each plane must hold at least stride*rows bytes for its subsampling.
func NewPlanarFrameFromPlanes(t VideoType, width, height int, y, u, v []byte, strideY, strideU, strideV int) (*PlanarFrame, error) {
	f, err := NewPlanarFrameWithStrides(t, width, height, strideY, strideU, strideV)
	if err != nil {
		return nil, err
	}
	for p, src := range [NumPlanes][]byte{y, u, v} {
		dst := f.planes[p]
		if len(src) < len(dst) {
			return nil, fmt.Errorf("%w: plane %s holds %d bytes, need %d",
				ErrInvalidFrame, PlaneType(p), len(src), len(dst))
		}
		copy(dst, src)
	}
	return f, nil
}

// NewZeroSizeFrame returns a frame of type t with no allocated planes.
// Its IsZeroSize method reports true.
func NewZeroSizeFrame(t VideoType) *PlanarFrame {
	return &PlanarFrame{videoType: t}
}

func validateLayout(t VideoType, width, height int, strides [NumPlanes]int) error {
	if !t.IsPlanar() {
		return fmt.Errorf("%w: %s is not a planar type", ErrUnsupportedFormat, t)
	}
	if err := limits.ValidateVideoDimensions(width, height); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	rows := [NumPlanes]int{height, ChromaHeight(t, height), ChromaHeight(t, height)}
	rowBytes := [NumPlanes]int{width, ChromaWidth(width), ChromaWidth(width)}
	total := 0
	for p := PlaneY; p < NumPlanes; p++ {
		if err := limits.ValidateStride(strides[p], rowBytes[p]); err != nil {
			return fmt.Errorf("%w: plane %s: %w", ErrInvalidFrame, p, err)
		}
		total += strides[p] * rows[p]
	}
	if err := limits.ValidateBufferSize(total); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	return nil
}

// live reports whether the frame may be used and flags misuse otherwise.
func (f *PlanarFrame) live(op string) bool {
	if f == nil {
		return false
	}
	if f.released.Load() {
		reportUseAfterRelease(op)
		return false
	}
	return true
}

// planeRows returns the number of rows in plane p.
func (f *PlanarFrame) planeRows(p PlaneType) int {
	if f.height == 0 {
		return 0
	}
	if p == PlaneY {
		return f.height
	}
	return ChromaHeight(f.videoType, f.height)
}

// planeWidth returns the number of meaningful bytes per row in plane p.
func (f *PlanarFrame) planeWidth(p PlaneType) int {
	if p == PlaneY {
		return f.width
	}
	if f.width == 0 {
		return 0
	}
	return ChromaWidth(f.width)
}

// Release destroys the frame. It must be called exactly once; a second call
// returns ErrFrameReleased and has no other effect.
func (f *PlanarFrame) Release() error {
	if f == nil {
		return ErrFrameReleased
	}
	if !f.released.CompareAndSwap(false, true) {
		reportDoubleRelease()
		return ErrFrameReleased
	}
	return nil
}

// Released reports whether Release has been called.
func (f *PlanarFrame) Released() bool {
	return f == nil || f.released.Load()
}

// Buffer returns a view of plane p. It returns nil for an unknown plane or
// a released frame. Callers must not retain the slice past Release.
func (f *PlanarFrame) Buffer(p PlaneType) []byte {
	if !f.live("Buffer") || !p.valid() {
		return nil
	}
	return f.planes[p]
}

// AllocatedSize returns the capacity in bytes backing plane p.
func (f *PlanarFrame) AllocatedSize(p PlaneType) int {
	if !f.live("AllocatedSize") || !p.valid() {
		return 0
	}
	return cap(f.planes[p])
}

// Stride returns the row pitch in bytes of plane p.
func (f *PlanarFrame) Stride(p PlaneType) int {
	if !f.live("Stride") || !p.valid() {
		return 0
	}
	return f.strides[p]
}

// Width returns the luma width in pixels.
func (f *PlanarFrame) Width() int {
	if !f.live("Width") {
		return 0
	}
	return f.width
}

// Height returns the luma height in pixels.
func (f *PlanarFrame) Height() int {
	if !f.live("Height") {
		return 0
	}
	return f.height
}

// VideoType returns the planar layout of the frame.
func (f *PlanarFrame) VideoType() VideoType {
	if !f.live("VideoType") {
		return VideoTypeUnknown
	}
	return f.videoType
}

// Timestamp returns the capture timestamp on the 90 kHz clock.
func (f *PlanarFrame) Timestamp() uint32 {
	if !f.live("Timestamp") {
		return 0
	}
	return f.timestamp
}

// SetTimestamp sets the 90 kHz capture timestamp.
func (f *PlanarFrame) SetTimestamp(ts uint32) {
	if f.live("SetTimestamp") {
		f.timestamp = ts
	}
}

// RenderTimeMs returns the wall-clock render time in milliseconds.
func (f *PlanarFrame) RenderTimeMs() int64 {
	if !f.live("RenderTimeMs") {
		return 0
	}
	return f.renderTimeMs
}

// SetRenderTimeMs sets the wall-clock render time in milliseconds.
func (f *PlanarFrame) SetRenderTimeMs(ms int64) {
	if f.live("SetRenderTimeMs") {
		f.renderTimeMs = ms
	}
}

// IsZeroSize reports whether no plane has any allocated storage.
func (f *PlanarFrame) IsZeroSize() bool {
	return f.AllocatedSize(PlaneY) == 0 &&
		f.AllocatedSize(PlaneU) == 0 &&
		f.AllocatedSize(PlaneV) == 0
}

// CopyFrame copies this frame into dst and returns it. A nil dst allocates
// a new frame. Plane storage in dst is reused when its capacity suffices.
// On error dst is left untouched.
func (f *PlanarFrame) CopyFrame(dst *PlanarFrame) (*PlanarFrame, error) {
	if !f.live("CopyFrame") {
		return nil, ErrFrameReleased
	}
	if dst != nil && !dst.live("CopyFrame") {
		return nil, fmt.Errorf("destination: %w", ErrFrameReleased)
	}
	if dst == f {
		return f, nil
	}

	var planes [NumPlanes][]byte
	for p := PlaneY; p < NumPlanes; p++ {
		need := len(f.planes[p])
		if dst != nil && cap(dst.planes[p]) >= need {
			planes[p] = dst.planes[p][:need]
		} else {
			planes[p] = make([]byte, need)
		}
	}

	if dst == nil {
		dst = &PlanarFrame{}
	}
	for p := PlaneY; p < NumPlanes; p++ {
		copy(planes[p], f.planes[p])
		dst.planes[p] = planes[p]
	}
	dst.videoType = f.videoType
	dst.width = f.width
	dst.height = f.height
	dst.strides = f.strides
	dst.timestamp = f.timestamp
	dst.renderTimeMs = f.renderTimeMs

	logrus.WithFields(logrus.Fields{
		"function": "CopyFrame",
		"type":     f.videoType.String(),
		"width":    f.width,
		"height":   f.height,
	}).Debug("Copied planar frame")

	return dst, nil
}

// row returns row y of plane p, trimmed to the meaningful width.
func (f *PlanarFrame) row(p PlaneType, y int) []byte {
	off := y * f.strides[p]
	return f.planes[p][off : off+f.planeWidth(p)]
}

func (f *PlanarFrame) String() string {
	if f.Released() {
		return "PlanarFrame(released)"
	}
	return fmt.Sprintf("PlanarFrame(%s %dx%d)", f.videoType, f.width, f.height)
}
