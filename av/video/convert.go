package video

import (
	"fmt"

	"github.com/opd-ai/rawdata/limits"
	"github.com/sirupsen/logrus"
)

// Colour conversion uses BT.601 limited range in 8-bit fixed point:
// luma spans 16-235 and chroma 16-240 centred on 128.

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func rgbToYUV(r, g, b int) (y, u, v int) {
	y = ((66*r + 129*g + 25*b + 128) >> 8) + 16
	u = ((-38*r - 74*g + 112*b + 128) >> 8) + 128
	v = ((112*r - 94*g - 18*b + 128) >> 8) + 128
	return y, u, v
}

func yuvToRGB(y, u, v int) (r, g, b byte) {
	c := y - 16
	d := u - 128
	e := v - 128
	r = clampByte((298*c + 409*e + 128) >> 8)
	g = clampByte((298*c - 100*d - 208*e + 128) >> 8)
	b = clampByte((298*c + 516*d + 128) >> 8)
	return r, g, b
}

// yuvReader samples a source image in its own pixel coordinates.
type yuvReader interface {
	luma(x, y int) int
	chroma(x, y int) (u, v int)
}

func (f *PlanarFrame) luma(x, y int) int {
	return int(f.planes[PlaneY][y*f.strides[PlaneY]+x])
}

func (f *PlanarFrame) chroma(x, y int) (int, int) {
	if f.videoType.verticalSubsampled() {
		y /= 2
	}
	x /= 2
	return int(f.planes[PlaneU][y*f.strides[PlaneU]+x]),
		int(f.planes[PlaneV][y*f.strides[PlaneV]+x])
}

// sampleChroma averages the chroma of the pixel block that maps onto chroma
// sample (cx, cy) of a w x h destination whose origin is (left, top) in src.
func sampleChroma(src yuvReader, left, top, cx, cy, w, h int, vertSub bool) (byte, byte) {
	x0 := 2 * cx
	x1 := min(x0+1, w-1)
	y0, y1 := cy, cy
	if vertSub {
		y0 = 2 * cy
		y1 = min(y0+1, h-1)
	}
	var su, sv int
	for _, p := range [4][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		u, v := src.chroma(left+p[0], top+p[1])
		su += u
		sv += v
	}
	return byte((su + 2) >> 2), byte((sv + 2) >> 2)
}

// rowBytes returns the meaningful bytes per row of the first plane of t.
func rowBytes(t VideoType, width int) int {
	switch t {
	case VideoTypeYUY2, VideoTypeUYVY:
		return ChromaWidth(width) * 4
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12, VideoTypeI422, VideoTypeNV12, VideoTypeNV21:
		return width
	default:
		return width * t.bytesPerPixel()
	}
}

// chromaLayout describes where chroma lives in a contiguous buffer of type t
// whose first plane has the given stride. step is 2 for interleaved chroma.
type chromaLayout struct {
	uOff, vOff int
	stride     int
	step       int
	rows       int
}

func layoutOf(t VideoType, stride, height int) chromaLayout {
	ySize := stride * height
	cs := (stride + 1) / 2
	ch := ChromaHeight(t, height)
	switch t {
	case VideoTypeI420, VideoTypeIYUV, VideoTypeI422:
		return chromaLayout{uOff: ySize, vOff: ySize + cs*ch, stride: cs, step: 1, rows: ch}
	case VideoTypeYV12:
		return chromaLayout{uOff: ySize + cs*ch, vOff: ySize, stride: cs, step: 1, rows: ch}
	case VideoTypeNV12:
		return chromaLayout{uOff: ySize, vOff: ySize + 1, stride: 2 * cs, step: 2, rows: ch}
	case VideoTypeNV21:
		return chromaLayout{uOff: ySize + 1, vOff: ySize, stride: 2 * cs, step: 2, rows: ch}
	default:
		return chromaLayout{}
	}
}

// layoutSize returns the bytes a buffer of type t needs for the given first
// plane stride. With stride equal to rowBytes it matches CalcBufferSize.
func layoutSize(t VideoType, stride, height int) int {
	switch t {
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12, VideoTypeI422, VideoTypeNV12, VideoTypeNV21:
		l := layoutOf(t, stride, height)
		if l.step == 2 {
			return stride*height + l.stride*l.rows
		}
		return stride*height + 2*l.stride*l.rows
	default:
		return stride * height
	}
}

// rawLayout reads a contiguous caller buffer of any importable type.
type rawLayout struct {
	t      VideoType
	buf    []byte
	stride int
	cl     chromaLayout
}

func newRawLayout(t VideoType, buf []byte, stride, width, height int) (rawLayout, error) {
	if !importable(t) {
		return rawLayout{}, fmt.Errorf("%w: import from %s", ErrUnsupportedConversion, t)
	}
	if err := limits.ValidateVideoDimensions(width, height); err != nil {
		return rawLayout{}, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	if stride == 0 {
		stride = rowBytes(t, width)
	}
	if err := limits.ValidateStride(stride, rowBytes(t, width)); err != nil {
		return rawLayout{}, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	if need := layoutSize(t, stride, height); len(buf) < need {
		return rawLayout{}, fmt.Errorf("%w: %s %dx%d needs %d bytes, got %d",
			ErrInvalidFrame, t, width, height, need, len(buf))
	}
	return rawLayout{t: t, buf: buf, stride: stride, cl: layoutOf(t, stride, height)}, nil
}

func importable(t VideoType) bool {
	switch t {
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12, VideoTypeI422, VideoTypeNV12, VideoTypeNV21,
		VideoTypeYUY2, VideoTypeUYVY,
		VideoTypeRGB24, VideoTypeARGB, VideoTypeABGR, VideoTypeBGRA, VideoTypeRGBA:
		return true
	default:
		return false
	}
}

func (l rawLayout) rgbAt(x, y int) (int, int, int) {
	p := l.buf[y*l.stride+x*l.t.bytesPerPixel():]
	switch l.t {
	case VideoTypeRGB24, VideoTypeRGBA:
		return int(p[0]), int(p[1]), int(p[2])
	case VideoTypeBGRA:
		return int(p[2]), int(p[1]), int(p[0])
	case VideoTypeARGB:
		return int(p[1]), int(p[2]), int(p[3])
	default: // ABGR
		return int(p[3]), int(p[2]), int(p[1])
	}
}

func (l rawLayout) luma(x, y int) int {
	switch l.t {
	case VideoTypeYUY2:
		return int(l.buf[y*l.stride+(x/2)*4+(x&1)*2])
	case VideoTypeUYVY:
		return int(l.buf[y*l.stride+(x/2)*4+1+(x&1)*2])
	}
	if l.cl.step == 0 {
		yy, _, _ := rgbToYUV(l.rgbAt(x, y))
		return yy
	}
	return int(l.buf[y*l.stride+x])
}

func (l rawLayout) chroma(x, y int) (int, int) {
	switch l.t {
	case VideoTypeYUY2:
		off := y*l.stride + (x/2)*4
		return int(l.buf[off+1]), int(l.buf[off+3])
	case VideoTypeUYVY:
		off := y*l.stride + (x/2)*4
		return int(l.buf[off]), int(l.buf[off+2])
	}
	if l.cl.step == 0 {
		_, u, v := rgbToYUV(l.rgbAt(x, y))
		return u, v
	}
	if l.t.verticalSubsampled() {
		y /= 2
	}
	off := y*l.cl.stride + (x/2)*l.cl.step
	return int(l.buf[l.cl.uOff+off]), int(l.buf[l.cl.vOff+off])
}

// fillPlanar writes the w x h region of src starting at (left, top) into
// dst, resampling chroma to dst's subsampling.
func fillPlanar(dst *PlanarFrame, src yuvReader, left, top int) {
	w, h := dst.width, dst.height
	for y := 0; y < h; y++ {
		row := dst.row(PlaneY, y)
		for x := range row {
			row[x] = byte(src.luma(left+x, top+y))
		}
	}
	vertSub := dst.videoType.verticalSubsampled()
	for cy := 0; cy < dst.planeRows(PlaneU); cy++ {
		urow := dst.row(PlaneU, cy)
		vrow := dst.row(PlaneV, cy)
		for cx := range urow {
			urow[cx], vrow[cx] = sampleChroma(src, left, top, cx, cy, w, h, vertSub)
		}
	}
}

// writeLayout renders a w x h region of src into a contiguous buffer of
// type t with the given first plane stride. dst must hold layoutSize bytes.
func writeLayout(dst []byte, t VideoType, stride int, src yuvReader, w, h int) {
	switch t {
	case VideoTypeYUY2, VideoTypeUYVY:
		writePacked422(dst, t, stride, src, w, h)
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12, VideoTypeI422, VideoTypeNV12, VideoTypeNV21:
		for y := 0; y < h; y++ {
			row := dst[y*stride : y*stride+w]
			for x := range row {
				row[x] = byte(src.luma(x, y))
			}
		}
		l := layoutOf(t, stride, h)
		cw := ChromaWidth(w)
		for cy := 0; cy < l.rows; cy++ {
			for cx := 0; cx < cw; cx++ {
				off := cy*l.stride + cx*l.step
				dst[l.uOff+off], dst[l.vOff+off] = sampleChroma(src, 0, 0, cx, cy, w, h, t.verticalSubsampled())
			}
		}
	default:
		bpp := t.bytesPerPixel()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				u, v := src.chroma(x, y)
				r, g, b := yuvToRGB(src.luma(x, y), u, v)
				putRGB(dst[y*stride+x*bpp:], t, r, g, b)
			}
		}
	}
}

func writePacked422(dst []byte, t VideoType, stride int, src yuvReader, w, h int) {
	for y := 0; y < h; y++ {
		for i := 0; i < ChromaWidth(w); i++ {
			x0 := 2 * i
			x1 := min(x0+1, w-1)
			y0, y1 := byte(src.luma(x0, y)), byte(src.luma(x1, y))
			u, v := sampleChroma(src, 0, 0, i, y, w, h, false)
			p := dst[y*stride+i*4:]
			if t == VideoTypeYUY2 {
				p[0], p[1], p[2], p[3] = y0, u, y1, v
			} else {
				p[0], p[1], p[2], p[3] = u, y0, v, y1
			}
		}
	}
}

func putRGB(p []byte, t VideoType, r, g, b byte) {
	switch t {
	case VideoTypeRGB24:
		p[0], p[1], p[2] = r, g, b
	case VideoTypeRGBA:
		p[0], p[1], p[2], p[3] = r, g, b, 0xff
	case VideoTypeBGRA:
		p[0], p[1], p[2], p[3] = b, g, r, 0xff
	case VideoTypeARGB:
		p[0], p[1], p[2], p[3] = 0xff, r, g, b
	case VideoTypeABGR:
		p[0], p[1], p[2], p[3] = 0xff, b, g, r
	case VideoTypeRGB565:
		putWord(p, uint16(r>>3)<<11|uint16(g>>2)<<5|uint16(b>>3))
	case VideoTypeARGB1555:
		putWord(p, 1<<15|uint16(r>>3)<<10|uint16(g>>3)<<5|uint16(b>>3))
	case VideoTypeARGB4444:
		putWord(p, 0xf<<12|uint16(r>>4)<<8|uint16(g>>4)<<4|uint16(b>>4))
	}
}

func putWord(p []byte, w uint16) {
	p[0] = byte(w)
	p[1] = byte(w >> 8)
}

// ConvertFrame converts the frame into dst as dstType and returns the number
// of bytes written. dstSampleSize is the destination row stride in bytes of
// the first plane; 0 means tightly packed, in which case exactly
// CalcBufferSize(dstType, Width(), Height()) bytes are written.
func (f *PlanarFrame) ConvertFrame(dstType VideoType, dstSampleSize int, dst []byte) (int, error) {
	if !f.live("ConvertFrame") {
		return 0, ErrFrameReleased
	}
	if f.IsZeroSize() {
		return 0, fmt.Errorf("%w: zero-size frame", ErrInvalidFrame)
	}
	if dstType == VideoTypeMJPG || rowBytes(dstType, f.width) == 0 {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, f.videoType, dstType)
	}

	stride := dstSampleSize
	if stride == 0 {
		stride = rowBytes(dstType, f.width)
	}
	if err := limits.ValidateStride(stride, rowBytes(dstType, f.width)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}

	need := layoutSize(dstType, stride, f.height)
	if len(dst) < need {
		if rows := len(dst) / stride; rows < f.height {
			return 0, fmt.Errorf("%w: %w: %d rows for %d-row frame",
				ErrBufferTooSmall, ErrHeightMismatch, rows, f.height)
		}
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrBufferTooSmall, need, len(dst))
	}

	writeLayout(dst, dstType, stride, f, f.width, f.height)

	logrus.WithFields(logrus.Fields{
		"function": "ConvertFrame",
		"from":     f.videoType.String(),
		"to":       dstType.String(),
		"bytes":    need,
	}).Debug("Converted planar frame")

	return need, nil
}

// ConvertInto converts the frame into another planar frame of the same
// dimensions, resampling chroma when the subsampling differs.
func (f *PlanarFrame) ConvertInto(dst *PlanarFrame) error {
	if !f.live("ConvertInto") {
		return ErrFrameReleased
	}
	if !dst.live("ConvertInto") {
		return fmt.Errorf("destination: %w", ErrFrameReleased)
	}
	if dst.height != f.height || dst.width != f.width {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrHeightMismatch, f.width, f.height, dst.width, dst.height)
	}
	if f.IsZeroSize() {
		return fmt.Errorf("%w: zero-size frame", ErrInvalidFrame)
	}
	if dst == f {
		return nil
	}
	fillPlanar(dst, f, 0, 0)
	dst.timestamp = f.timestamp
	dst.renderTimeMs = f.renderTimeMs
	return nil
}
