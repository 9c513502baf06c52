package render

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/opd-ai/rawdata/av/video"
	"github.com/sirupsen/logrus"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateCreated State = iota
	StateInitialized
	StateReleased
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateReleased:
		return "released"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session guards one Renderer so frames reach it only between a successful
// Initialize and Release. Calls into the renderer are serialized.
type Session struct {
	id       uuid.UUID
	uid      uint32
	ctx      Context
	renderer Renderer

	mu    sync.Mutex
	state State

	delivered atomic.Uint64
	width     atomic.Int32
	height    atomic.Int32
}

// NewSession asks factory for the renderer of view uid. The session starts
// in StateCreated.
func NewSession(factory Factory, uid uint32, ctx Context) (*Session, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: nil factory", ErrNilRenderer)
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}

	r, err := factory.CreateRenderInstance(ctx)
	if err != nil {
		return nil, fmt.Errorf("create renderer for uid %d: %w", uid, err)
	}
	if r == nil {
		return nil, ErrNilRenderer
	}

	s := &Session{
		id:       uuid.New(),
		uid:      uid,
		ctx:      ctx,
		renderer: r,
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewSession",
		"session":  s.id.String(),
		"uid":      uid,
		"mode":     ctx.RenderMode.String(),
	}).Info("Render session created")

	return s, nil
}

// ID returns the session identifier used in logs and stats.
func (s *Session) ID() uuid.UUID { return s.id }

// UID returns the view the session renders.
func (s *Session) UID() uint32 { return s.uid }

// Context returns the render context the renderer was created with.
func (s *Session) Context() Context { return s.ctx }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Delivered returns the number of frames accepted by the renderer.
func (s *Session) Delivered() uint64 { return s.delivered.Load() }

// ViewSize returns the last size reported through OnViewSizeChanged.
func (s *Session) ViewSize() (width, height int) {
	return int(s.width.Load()), int(s.height.Load())
}

// SetViewSize records a view size reported by the renderer.
func (s *Session) SetViewSize(width, height int) {
	s.width.Store(int32(width))
	s.height.Store(int32(height))
}

// Initialize initializes the renderer. It may only be called in
// StateCreated. A renderer error moves the session to StateFailed.
func (s *Session) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCreated:
	case StateReleased:
		return ErrSessionReleased
	default:
		return fmt.Errorf("initialize in state %s", s.state)
	}

	if err := s.renderer.Initialize(); err != nil {
		s.state = StateFailed
		logrus.WithFields(logrus.Fields{
			"function": "Initialize",
			"session":  s.id.String(),
			"uid":      s.uid,
			"error":    err.Error(),
		}).Warn("Renderer initialization failed")
		return fmt.Errorf("%w: %w", ErrInitializeFailed, err)
	}

	s.state = StateInitialized
	logrus.WithFields(logrus.Fields{
		"function": "Initialize",
		"session":  s.id.String(),
		"uid":      s.uid,
	}).Info("Renderer initialized")
	return nil
}

// DeliverFrame passes frame to the renderer. It fails with
// ErrNotInitialized before a successful Initialize and with
// ErrSessionReleased after Release, without calling the renderer.
func (s *Session) DeliverFrame(frame *video.PlanarFrame, rotation int, mirrored bool) error {
	if !video.ValidRotation(rotation) {
		return fmt.Errorf("%w: %d", video.ErrInvalidRotation, rotation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateInitialized:
	case StateReleased:
		return ErrSessionReleased
	default:
		return fmt.Errorf("%w: session %s is %s", ErrNotInitialized, s.id, s.state)
	}

	if err := s.renderer.DeliverFrame(frame, rotation, mirrored); err != nil {
		return err
	}
	s.delivered.Add(1)
	return nil
}

// Release releases the renderer. Only the first call has an effect; later
// calls return ErrSessionReleased.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReleased {
		return ErrSessionReleased
	}
	s.state = StateReleased
	s.renderer.Release()

	logrus.WithFields(logrus.Fields{
		"function":  "Release",
		"session":   s.id.String(),
		"uid":       s.uid,
		"delivered": s.delivered.Load(),
	}).Info("Render session released")
	return nil
}
