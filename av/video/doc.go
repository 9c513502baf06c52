// Package video provides the raw video frame types of the media pipeline.
//
// Two frame representations exist side by side:
//
//   - PlanarFrame is an owned planar buffer (I420, IYUV, YV12 or I422).
//     The pipeline creates it, hands it to renderers and destroys it exactly
//     once with Release.
//   - VideoFrame is a borrowed view handed to observers. It is valid only
//     for the duration of one callback.
//
// # Conversion
//
// PlanarFrame.ConvertFrame renders a frame into a caller buffer in any
// packed or planar VideoType except MJPG, and ConvertToI420 imports such
// buffers back:
//
//	size := video.CalcBufferSize(video.VideoTypeRGBA, f.Width(), f.Height())
//	buf := make([]byte, size)
//	n, err := f.ConvertFrame(video.VideoTypeRGBA, 0, buf)
//
// Colour conversion uses BT.601 limited range integer arithmetic. Packed
// byte orders follow the type name in memory order, so RGBA is stored as
// R, G, B, A bytes and the 16-bit types are little-endian words.
//
// # External frames
//
// ExternalVideoFrame describes a caller-owned buffer pushed by an
// application that captures video itself. ToPlanarFrame validates it and
// copies its crop rectangle into a new I420 frame.
//
// # Observers
//
// Observer is the callback contract for capture and render points. The
// optional PreEncodeObserver, FormatPreferrer, RotationApplier,
// MirrorApplier and SmoothRenderer interfaces extend it, and helpers such
// as PreEncode and FormatPreference apply their defaults. LendVideoFrame
// builds the view an observer sees and writes accepted changes back.
//
// # Debug builds
//
// Building with the rawdatadebug tag turns use of a released PlanarFrame
// and double release into panics. Normal builds log and return zero values
// or ErrFrameReleased.
package video
