package video

import "fmt"

// VideoType enumerates the pixel layouts an owned frame can be converted to
// or imported from. Values match the media engine's wire enumeration.
type VideoType int

const (
	VideoTypeUnknown  VideoType = 0
	VideoTypeI420     VideoType = 1  // planar 4:2:0, Y then U then V
	VideoTypeIYUV     VideoType = 2  // alias of I420
	VideoTypeRGB24    VideoType = 3  // packed, bytes R,G,B
	VideoTypeABGR     VideoType = 4  // packed, bytes A,B,G,R
	VideoTypeARGB     VideoType = 5  // packed, bytes A,R,G,B
	VideoTypeARGB4444 VideoType = 6  // 16-bit LE words AAAARRRRGGGGBBBB
	VideoTypeRGB565   VideoType = 7  // 16-bit LE words RRRRRGGGGGGBBBBB
	VideoTypeARGB1555 VideoType = 8  // 16-bit LE words ARRRRRGGGGGBBBBB
	VideoTypeYUY2     VideoType = 9  // packed 4:2:2, bytes Y0,U,Y1,V
	VideoTypeYV12     VideoType = 10 // planar 4:2:0, Y then V then U
	VideoTypeUYVY     VideoType = 11 // packed 4:2:2, bytes U,Y0,V,Y1
	VideoTypeMJPG     VideoType = 12 // variable-size JPEG samples
	VideoTypeNV21     VideoType = 13 // Y plane then interleaved V,U
	VideoTypeNV12     VideoType = 14 // Y plane then interleaved U,V
	VideoTypeBGRA     VideoType = 15 // packed, bytes B,G,R,A
	VideoTypeRGBA     VideoType = 16 // packed, bytes R,G,B,A
	VideoTypeI422     VideoType = 17 // planar 4:2:2, Y then U then V
)

func (t VideoType) String() string {
	switch t {
	case VideoTypeI420:
		return "I420"
	case VideoTypeIYUV:
		return "IYUV"
	case VideoTypeRGB24:
		return "RGB24"
	case VideoTypeABGR:
		return "ABGR"
	case VideoTypeARGB:
		return "ARGB"
	case VideoTypeARGB4444:
		return "ARGB4444"
	case VideoTypeRGB565:
		return "RGB565"
	case VideoTypeARGB1555:
		return "ARGB1555"
	case VideoTypeYUY2:
		return "YUY2"
	case VideoTypeYV12:
		return "YV12"
	case VideoTypeUYVY:
		return "UYVY"
	case VideoTypeMJPG:
		return "MJPG"
	case VideoTypeNV21:
		return "NV21"
	case VideoTypeNV12:
		return "NV12"
	case VideoTypeBGRA:
		return "BGRA"
	case VideoTypeRGBA:
		return "RGBA"
	case VideoTypeI422:
		return "I422"
	default:
		return "Unknown"
	}
}

// ParseVideoType returns the VideoType whose String form matches name.
func ParseVideoType(name string) (VideoType, error) {
	for t := VideoTypeI420; t <= VideoTypeI422; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return VideoTypeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// IsPlanar reports whether t can back a PlanarFrame.
func (t VideoType) IsPlanar() bool {
	switch t {
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12, VideoTypeI422:
		return true
	default:
		return false
	}
}

// bytesPerPixel returns the size of one pixel for single-plane RGB layouts.
func (t VideoType) bytesPerPixel() int {
	switch t {
	case VideoTypeRGB24:
		return 3
	case VideoTypeARGB, VideoTypeABGR, VideoTypeBGRA, VideoTypeRGBA:
		return 4
	case VideoTypeRGB565, VideoTypeARGB1555, VideoTypeARGB4444:
		return 2
	default:
		return 0
	}
}

// verticalSubsampled reports whether chroma has half the luma rows (4:2:0).
func (t VideoType) verticalSubsampled() bool {
	switch t {
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12, VideoTypeNV12, VideoTypeNV21:
		return true
	default:
		return false
	}
}

// PlaneType enumerates the planes of a planar frame.
type PlaneType int

const (
	PlaneY PlaneType = iota
	PlaneU
	PlaneV
	NumPlanes
)

func (p PlaneType) String() string {
	switch p {
	case PlaneY:
		return "Y"
	case PlaneU:
		return "U"
	case PlaneV:
		return "V"
	default:
		return fmt.Sprintf("Plane(%d)", int(p))
	}
}

func (p PlaneType) valid() bool {
	return p >= PlaneY && p < NumPlanes
}

// ChromaWidth returns the chroma plane width for a luma width (both 4:2:0 and 4:2:2).
func ChromaWidth(width int) int {
	return (width + 1) / 2
}

// ChromaHeight returns the chroma plane height of t for a luma height.
func ChromaHeight(t VideoType, height int) int {
	if t.verticalSubsampled() {
		return (height + 1) / 2
	}
	return height
}

// CalcBufferSize returns the tightly packed size in bytes of a width x height
// frame of type t. It returns 0 for VideoTypeMJPG, whose size depends on
// content, and for unknown types.
func CalcBufferSize(t VideoType, width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	cw := ChromaWidth(width)
	switch t {
	case VideoTypeI420, VideoTypeIYUV, VideoTypeYV12, VideoTypeNV12, VideoTypeNV21:
		return width*height + 2*cw*((height+1)/2)
	case VideoTypeI422:
		return width*height + 2*cw*height
	case VideoTypeYUY2, VideoTypeUYVY:
		return cw * 4 * height
	default:
		return width * height * t.bytesPerPixel()
	}
}

// FrameType is the layout of a VideoFrame handed to observers.
type FrameType int

const (
	FrameTypeYUV420 FrameType = 0 // planar 4:2:0
	FrameTypeYUV422 FrameType = 1 // planar 4:2:2
	FrameTypeRGBA   FrameType = 2 // packed R,G,B,A in YBuffer
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeYUV420:
		return "YUV420"
	case FrameTypeYUV422:
		return "YUV422"
	case FrameTypeRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("FrameType(%d)", int(t))
	}
}

// ValidRotation reports whether r is one of 0, 90, 180 or 270.
func ValidRotation(r int) bool {
	switch r {
	case 0, 90, 180, 270:
		return true
	default:
		return false
	}
}
