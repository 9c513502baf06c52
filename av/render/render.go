package render

import (
	"errors"
	"fmt"

	"github.com/opd-ai/rawdata/av/video"
)

var (
	// ErrNotInitialized indicates a frame delivered before a successful Initialize.
	ErrNotInitialized = errors.New("renderer not initialized")

	// ErrSessionReleased indicates use of a session after Release.
	ErrSessionReleased = errors.New("render session released")

	// ErrInitializeFailed indicates the renderer refused to initialize.
	ErrInitializeFailed = errors.New("renderer initialization failed")

	// ErrInvalidContext indicates a malformed render context.
	ErrInvalidContext = errors.New("invalid render context")

	// ErrNilRenderer indicates a factory returned no renderer.
	ErrNilRenderer = errors.New("factory returned nil renderer")
)

// Mode controls how frames are fitted into the view.
type Mode int

const (
	// ModeHidden scales to fill the view, cropping the overflow.
	ModeHidden Mode = 1
	// ModeFit scales to fit inside the view, letterboxing the rest.
	ModeFit Mode = 2
	// ModeAdaptive picks Hidden or Fit from the frame and view orientation.
	ModeAdaptive Mode = 3
)

func (m Mode) String() string {
	switch m {
	case ModeHidden:
		return "hidden"
	case ModeFit:
		return "fit"
	case ModeAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Callback carries notifications from a renderer back to the engine.
type Callback interface {
	// OnViewSizeChanged reports the new size of the view in pixels.
	OnViewSizeChanged(width, height int)
	// OnViewDestroyed reports that the view is gone; the session is torn down.
	OnViewDestroyed()
}

// Context describes the view a renderer draws into. Left, Top, Right and
// Bottom are fractions of the view in [0, 1]. A Context is fixed for the
// lifetime of the renderer created from it.
type Context struct {
	Callback   Callback
	View       any
	RenderMode Mode
	ZOrder     int
	Left       float32
	Top        float32
	Right      float32
	Bottom     float32
}

// Validate checks the render mode and viewport fractions. A zero viewport
// is accepted and means the whole view.
func (c Context) Validate() error {
	switch c.RenderMode {
	case ModeHidden, ModeFit, ModeAdaptive:
	default:
		return fmt.Errorf("%w: render mode %d", ErrInvalidContext, c.RenderMode)
	}
	if c.Left == 0 && c.Top == 0 && c.Right == 0 && c.Bottom == 0 {
		return nil
	}
	for _, v := range []float32{c.Left, c.Top, c.Right, c.Bottom} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: viewport fraction %v outside [0,1]", ErrInvalidContext, v)
		}
	}
	if c.Left >= c.Right || c.Top >= c.Bottom {
		return fmt.Errorf("%w: empty viewport (%v,%v)-(%v,%v)",
			ErrInvalidContext, c.Left, c.Top, c.Right, c.Bottom)
	}
	return nil
}

// Renderer draws frames into one view.
type Renderer interface {
	// Release frees the renderer. It is called exactly once.
	Release()
	// Initialize prepares the renderer. No frame is delivered before it succeeds.
	Initialize() error
	// DeliverFrame draws a frame. rotation and mirrored are delivery-time
	// overrides independent of any rotation recorded with the frame. The
	// frame is only valid for the duration of the call.
	DeliverFrame(frame *video.PlanarFrame, rotation int, mirrored bool) error
}

// Factory creates one Renderer per view.
type Factory interface {
	CreateRenderInstance(ctx Context) (Renderer, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx Context) (Renderer, error)

// CreateRenderInstance calls f(ctx).
func (f FactoryFunc) CreateRenderInstance(ctx Context) (Renderer, error) {
	return f(ctx)
}
