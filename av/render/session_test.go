package render

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/rawdata/av/video"
)

// mockRenderer records every call made to it.
type mockRenderer struct {
	mu         sync.Mutex
	initErr    error
	initCalls  int
	releases   int
	frames     int
	lastRot    int
	lastMirror bool
	deliverErr error
}

func (m *mockRenderer) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	return m.initErr
}

func (m *mockRenderer) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases++
}

func (m *mockRenderer) DeliverFrame(_ *video.PlanarFrame, rotation int, mirrored bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames++
	m.lastRot = rotation
	m.lastMirror = mirrored
	return m.deliverErr
}

func (m *mockRenderer) counts() (frames, releases int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames, m.releases
}

func factoryFor(r Renderer) Factory {
	return FactoryFunc(func(Context) (Renderer, error) { return r, nil })
}

func testFrame(t *testing.T) *video.PlanarFrame {
	t.Helper()
	f, err := video.NewPlanarFrame(video.VideoTypeI420, 16, 16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Release() })
	return f
}

var fitContext = Context{RenderMode: ModeFit}

func TestSession_Lifecycle(t *testing.T) {
	r := &mockRenderer{}
	s, err := NewSession(factoryFor(r), 3, fitContext)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.Equal(t, uint32(3), s.UID())
	assert.Equal(t, StateCreated, s.State())

	require.NoError(t, s.Initialize())
	assert.Equal(t, StateInitialized, s.State())

	require.NoError(t, s.DeliverFrame(testFrame(t), 90, true))
	assert.Equal(t, uint64(1), s.Delivered())
	assert.Equal(t, 90, r.lastRot)
	assert.True(t, r.lastMirror)

	require.NoError(t, s.Release())
	assert.Equal(t, StateReleased, s.State())
	assert.ErrorIs(t, s.Release(), ErrSessionReleased)

	_, releases := r.counts()
	assert.Equal(t, 1, releases)
}

func TestSession_DeliverBeforeInitialize(t *testing.T) {
	r := &mockRenderer{}
	s, err := NewSession(factoryFor(r), 0, fitContext)
	require.NoError(t, err)

	err = s.DeliverFrame(testFrame(t), 0, false)
	assert.ErrorIs(t, err, ErrNotInitialized)

	frames, _ := r.counts()
	assert.Zero(t, frames)
}

func TestSession_DeliverAfterRelease(t *testing.T) {
	r := &mockRenderer{}
	s, err := NewSession(factoryFor(r), 0, fitContext)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	require.NoError(t, s.Release())

	err = s.DeliverFrame(testFrame(t), 0, false)
	assert.ErrorIs(t, err, ErrSessionReleased)
	assert.ErrorIs(t, s.Initialize(), ErrSessionReleased)

	frames, _ := r.counts()
	assert.Zero(t, frames)
}

func TestSession_InitializeFailure(t *testing.T) {
	cause := errors.New("no surface")
	r := &mockRenderer{initErr: cause}
	s, err := NewSession(factoryFor(r), 0, fitContext)
	require.NoError(t, err)

	err = s.Initialize()
	assert.ErrorIs(t, err, ErrInitializeFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, StateFailed, s.State())

	assert.ErrorIs(t, s.DeliverFrame(testFrame(t), 0, false), ErrNotInitialized)
	assert.Error(t, s.Initialize(), "no retry from failed state")

	require.NoError(t, s.Release())
	_, releases := r.counts()
	assert.Equal(t, 1, releases)
}

func TestSession_DeliverError(t *testing.T) {
	r := &mockRenderer{deliverErr: errors.New("lost device")}
	s, err := NewSession(factoryFor(r), 0, fitContext)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	assert.Error(t, s.DeliverFrame(testFrame(t), 0, false))
	assert.Zero(t, s.Delivered())
}

func TestSession_InvalidRotation(t *testing.T) {
	r := &mockRenderer{}
	s, err := NewSession(factoryFor(r), 0, fitContext)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	assert.ErrorIs(t, s.DeliverFrame(testFrame(t), 45, false), video.ErrInvalidRotation)
}

func TestNewSession_Errors(t *testing.T) {
	_, err := NewSession(nil, 0, fitContext)
	assert.ErrorIs(t, err, ErrNilRenderer)

	_, err = NewSession(factoryFor(nil), 0, fitContext)
	assert.ErrorIs(t, err, ErrNilRenderer)

	_, err = NewSession(factoryFor(&mockRenderer{}), 0, Context{})
	assert.ErrorIs(t, err, ErrInvalidContext)

	cause := errors.New("out of surfaces")
	_, err = NewSession(FactoryFunc(func(Context) (Renderer, error) { return nil, cause }), 0, fitContext)
	assert.ErrorIs(t, err, cause)
}

func TestSession_ViewSize(t *testing.T) {
	s, err := NewSession(factoryFor(&mockRenderer{}), 0, fitContext)
	require.NoError(t, err)

	s.SetViewSize(1280, 720)
	w, h := s.ViewSize()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestSession_ConcurrentDeliverAndRelease(t *testing.T) {
	r := &mockRenderer{}
	s, err := NewSession(factoryFor(r), 0, fitContext)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	frame := testFrame(t)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				err := s.DeliverFrame(frame, 0, false)
				if err != nil && !errors.Is(err, ErrSessionReleased) {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		_ = s.Release()
		return nil
	})
	require.NoError(t, g.Wait())

	frames, releases := r.counts()
	assert.Equal(t, 1, releases)
	assert.Equal(t, uint64(frames), s.Delivered())
}

func TestContext_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ctx   Context
		valid bool
	}{
		{"fit whole view", Context{RenderMode: ModeFit}, true},
		{"hidden viewport", Context{RenderMode: ModeHidden, Left: 0.1, Top: 0.1, Right: 0.9, Bottom: 0.5}, true},
		{"adaptive", Context{RenderMode: ModeAdaptive, Right: 1, Bottom: 1}, true},
		{"no mode", Context{}, false},
		{"inverted", Context{RenderMode: ModeFit, Left: 0.5, Right: 0.2, Bottom: 1}, false},
		{"out of range", Context{RenderMode: ModeFit, Right: 1.5, Bottom: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidContext)
			}
		})
	}
}
