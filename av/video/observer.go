package video

// Observer receives video frames at the capture and render points of the
// pipeline. Returning false drops the frame; dropping is not an error.
// Changes made to the frame are kept only when the callback returns true.
type Observer interface {
	OnCaptureVideoFrame(frame *VideoFrame) bool
	OnRenderVideoFrame(uid uint32, frame *VideoFrame) bool
}

// PreEncodeObserver is implemented by observers that also want captured
// frames after the capture stage and before encoding.
type PreEncodeObserver interface {
	OnPreEncodeVideoFrame(frame *VideoFrame) bool
}

// FormatPreferrer is implemented by observers that want frames in a layout
// other than FrameTypeYUV420.
type FormatPreferrer interface {
	VideoFormatPreference() FrameType
}

// RotationApplier is implemented by observers that rotate frames
// themselves, in which case the renderer is told not to rotate again.
type RotationApplier interface {
	RotationApplied() bool
}

// MirrorApplier is implemented by observers that mirror frames themselves.
type MirrorApplier interface {
	MirrorApplied() bool
}

// SmoothRenderer is implemented by observers that want out-of-order render
// frames dropped.
type SmoothRenderer interface {
	SmoothRenderingEnabled() bool
}

// PreEncode calls o's pre-encode hook if it has one and accepts otherwise.
func PreEncode(o Observer, frame *VideoFrame) bool {
	if p, ok := o.(PreEncodeObserver); ok {
		return p.OnPreEncodeVideoFrame(frame)
	}
	return true
}

// FormatPreference returns the layout o wants, FrameTypeYUV420 by default.
func FormatPreference(o Observer) FrameType {
	if p, ok := o.(FormatPreferrer); ok {
		return p.VideoFormatPreference()
	}
	return FrameTypeYUV420
}

// RotationApplied reports whether o rotates frames itself.
func RotationApplied(o Observer) bool {
	p, ok := o.(RotationApplier)
	return ok && p.RotationApplied()
}

// MirrorApplied reports whether o mirrors frames itself.
func MirrorApplied(o Observer) bool {
	p, ok := o.(MirrorApplier)
	return ok && p.MirrorApplied()
}

// SmoothRenderingEnabled reports whether o asked for smooth rendering.
func SmoothRenderingEnabled(o Observer) bool {
	p, ok := o.(SmoothRenderer)
	return ok && p.SmoothRenderingEnabled()
}

// ObserverFuncs adapts plain functions to Observer and every optional
// capability. A nil function accepts the frame.
type ObserverFuncs struct {
	Capture         func(frame *VideoFrame) bool
	PreEncode       func(frame *VideoFrame) bool
	Render          func(uid uint32, frame *VideoFrame) bool
	Format          FrameType
	ApplyRotation   bool
	ApplyMirror     bool
	SmoothRendering bool
}

// OnCaptureVideoFrame implements Observer.
func (o ObserverFuncs) OnCaptureVideoFrame(frame *VideoFrame) bool {
	return o.Capture == nil || o.Capture(frame)
}

// OnPreEncodeVideoFrame implements PreEncodeObserver.
func (o ObserverFuncs) OnPreEncodeVideoFrame(frame *VideoFrame) bool {
	return o.PreEncode == nil || o.PreEncode(frame)
}

// OnRenderVideoFrame implements Observer.
func (o ObserverFuncs) OnRenderVideoFrame(uid uint32, frame *VideoFrame) bool {
	return o.Render == nil || o.Render(uid, frame)
}

// VideoFormatPreference implements FormatPreferrer.
func (o ObserverFuncs) VideoFormatPreference() FrameType { return o.Format }

// RotationApplied implements RotationApplier.
func (o ObserverFuncs) RotationApplied() bool { return o.ApplyRotation }

// MirrorApplied implements MirrorApplier.
func (o ObserverFuncs) MirrorApplied() bool { return o.ApplyMirror }

// SmoothRenderingEnabled implements SmoothRenderer.
func (o ObserverFuncs) SmoothRenderingEnabled() bool { return o.SmoothRendering }
