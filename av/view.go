package av

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/opd-ai/rawdata/av/render"
	"github.com/opd-ai/rawdata/av/video"
	"github.com/sirupsen/logrus"
)

// view is one render target. session is nil when the built-in renderer
// draws the view.
type view struct {
	uid       uint32
	session   atomic.Pointer[render.Session]
	destroyed atomic.Bool

	lastRenderMs atomic.Int64
	delivered    atomic.Uint64
	dropped      atomic.Uint64
	width        atomic.Int32
	height       atomic.Int32
}

func newView(uid uint32) *view {
	v := &view{uid: uid}
	v.lastRenderMs.Store(math.MinInt64)
	return v
}

func (v *view) release() {
	if s := v.session.Load(); s != nil {
		_ = s.Release()
	}
}

func (v *view) stats() ViewStats {
	vs := ViewStats{
		UID:       v.uid,
		State:     "builtin",
		Delivered: v.delivered.Load(),
		Dropped:   v.dropped.Load(),
		Width:     int(v.width.Load()),
		Height:    int(v.height.Load()),
	}
	if s := v.session.Load(); s != nil {
		vs.SessionID = s.ID().String()
		vs.External = true
		vs.State = s.State().String()
	}
	return vs
}

// inOrder records renderTimeMs and reports whether it is not older than
// the last frame drawn in this view.
func (v *view) inOrder(renderTimeMs int64) bool {
	for {
		last := v.lastRenderMs.Load()
		if renderTimeMs < last {
			return false
		}
		if v.lastRenderMs.CompareAndSwap(last, renderTimeMs) {
			return true
		}
	}
}

// viewCallback receives renderer notifications for one view and forwards
// them to the application's callback, if any.
type viewCallback struct {
	engine *Engine
	view   *view
	user   render.Callback
}

func (c *viewCallback) OnViewSizeChanged(width, height int) {
	c.view.width.Store(int32(width))
	c.view.height.Store(int32(height))
	if s := c.view.session.Load(); s != nil {
		s.SetViewSize(width, height)
	}
	logrus.WithFields(logrus.Fields{
		"function": "OnViewSizeChanged",
		"uid":      c.view.uid,
		"width":    width,
		"height":   height,
	}).Debug("View size changed")
	if c.user != nil {
		c.user.OnViewSizeChanged(width, height)
	}
}

func (c *viewCallback) OnViewDestroyed() {
	c.engine.detachView(c.view)
	if c.user != nil {
		c.user.OnViewDestroyed()
	}
}

// SetupView creates the render target for uid, replacing any existing one.
// uid 0 is the local preview.
//
// With a render factory registered, the factory creates a renderer for the
// view and it is initialized here. If creation or Initialize fails, the
// view falls back to the built-in renderer; the failure is logged and not
// returned.
func (e *Engine) SetupView(uid uint32, ctx render.Context) error {
	if err := ctx.Validate(); err != nil {
		return err
	}

	e.mu.RLock()
	released, factory := e.released, e.renderFactory
	e.mu.RUnlock()
	if released {
		return ErrEngineReleased
	}

	v := newView(uid)
	if factory != nil {
		ctx.Callback = &viewCallback{engine: e, view: v, user: ctx.Callback}
		if s := e.startSession(factory, uid, ctx); s != nil {
			v.session.Store(s)
		}
	}

	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		v.release()
		return ErrEngineReleased
	}
	if v.destroyed.Load() {
		// The renderer reported its view gone during setup
		e.mu.Unlock()
		v.release()
		return nil
	}
	old := e.views[uid]
	e.views[uid] = v
	e.mu.Unlock()

	if old != nil {
		old.release()
	}

	logrus.WithFields(logrus.Fields{
		"function": "SetupView",
		"uid":      uid,
		"external": v.session.Load() != nil,
		"mode":     ctx.RenderMode.String(),
	}).Info("View set up")
	return nil
}

// startSession creates and initializes an external render session. It
// returns nil when the view must fall back to the built-in renderer.
func (e *Engine) startSession(factory render.Factory, uid uint32, ctx render.Context) *render.Session {
	s, err := render.NewSession(factory, uid, ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "SetupView",
			"uid":      uid,
			"error":    err.Error(),
		}).Warn("Render factory failed, using built-in renderer")
		return nil
	}
	if err := s.Initialize(); err != nil {
		_ = s.Release()
		logrus.WithFields(logrus.Fields{
			"function": "SetupView",
			"uid":      uid,
			"session":  s.ID().String(),
			"error":    err.Error(),
		}).Warn("Renderer initialization failed, using built-in renderer")
		return nil
	}
	return s
}

// RemoveView tears down the render target for uid.
func (e *Engine) RemoveView(uid uint32) error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return ErrEngineReleased
	}
	v, ok := e.views[uid]
	delete(e.views, uid)
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: no view for uid %d", ErrInvalidArgument, uid)
	}
	v.release()

	logrus.WithFields(logrus.Fields{
		"function": "RemoveView",
		"uid":      uid,
	}).Info("View removed")
	return nil
}

// detachView removes v after its renderer reported the view destroyed. The
// session is released once any renderer call in progress returns, so a
// renderer may report destruction from inside its own methods.
func (e *Engine) detachView(v *view) {
	v.destroyed.Store(true)
	e.mu.Lock()
	if e.views[v.uid] == v {
		delete(e.views, v.uid)
	}
	e.mu.Unlock()

	go v.release()

	logrus.WithFields(logrus.Fields{
		"function": "OnViewDestroyed",
		"uid":      v.uid,
	}).Info("View destroyed by renderer")
}

// renderToView draws frame into the view of uid, if one exists. Rotation
// and mirroring are left to the observer when it declares it applies them,
// and smooth rendering drops frames older than the last one drawn.
func (e *Engine) renderToView(uid uint32, frame *video.PlanarFrame, rotation int, o video.Observer) error {
	e.mu.RLock()
	v := e.views[uid]
	e.mu.RUnlock()
	if v == nil {
		return nil
	}

	mirrored := uid == LocalUID && e.opts.LocalMirror
	if o != nil {
		if video.SmoothRenderingEnabled(o) && !v.inOrder(frame.RenderTimeMs()) {
			v.dropped.Add(1)
			logrus.WithFields(logrus.Fields{
				"function":       "renderToView",
				"uid":            uid,
				"render_time_ms": frame.RenderTimeMs(),
			}).Debug("Out-of-order frame dropped")
			return nil
		}
		if video.RotationApplied(o) {
			rotation = 0
		}
		if video.MirrorApplied(o) {
			mirrored = false
		}
	}

	s := v.session.Load()
	if s == nil {
		v.delivered.Add(1)
		return nil
	}
	if err := s.DeliverFrame(frame, rotation, mirrored); err != nil {
		v.dropped.Add(1)
		return fmt.Errorf("render uid %d: %w", uid, err)
	}
	v.delivered.Add(1)
	return nil
}
