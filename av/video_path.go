package av

import (
	"fmt"

	"github.com/opd-ai/rawdata/av/video"
	"github.com/sirupsen/logrus"
)

// SetExternalVideoSource switches video input between device capture and
// PushVideoFrame. Texture input is not supported.
func (e *Engine) SetExternalVideoSource(enable, useTexture bool) error {
	if useTexture {
		return fmt.Errorf("%w: texture video source", ErrNotSupported)
	}

	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return ErrEngineReleased
	}
	e.externalSource = enable
	e.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SetExternalVideoSource",
		"enable":   enable,
	}).Info("External video source updated")
	return nil
}

// ExternalVideoSource reports whether PushVideoFrame is the video input.
func (e *Engine) ExternalVideoSource() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.externalSource
}

// PushVideoFrame pushes a frame from an external video source. The frame
// is validated, cropped and imported to I420, scaled when the options set a
// capture size, and then follows the capture path of a device frame.
// frame.Buffer is not retained.
func (e *Engine) PushVideoFrame(frame *video.ExternalVideoFrame) error {
	if frame == nil {
		return fmt.Errorf("%w: nil video frame", ErrInvalidArgument)
	}
	e.mu.RLock()
	released, enabled := e.released, e.externalSource
	e.mu.RUnlock()
	if released {
		return ErrEngineReleased
	}
	if !enabled {
		return ErrExternalSourceDisabled
	}

	pf, err := frame.ToPlanarFrame()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "PushVideoFrame",
			"format":   frame.Format.String(),
			"error":    err.Error(),
		}).Error("External video frame rejected")
		return err
	}
	defer pf.Release()

	pf.SetTimestamp(uint32(frame.Timestamp * 90))
	if frame.Timestamp > 0 {
		pf.SetRenderTimeMs(frame.Timestamp)
	} else {
		pf.SetRenderTimeMs(e.getTimeProvider().Now().UnixMilli())
	}

	if e.opts.scalingEnabled() && e.scaler.IsScalingRequired(pf.Width(), pf.Height(), e.opts.CaptureWidth, e.opts.CaptureHeight) {
		scaled, err := e.scaler.Scale(pf, e.opts.CaptureWidth, e.opts.CaptureHeight)
		if err != nil {
			return err
		}
		defer scaled.Release()
		pf = scaled
	}

	_, err = e.capture(pf, frame.Rotation)
	return err
}

// DeliverCapturedVideo runs the capture path for a frame from the capture
// device. It is refused while an external video source is enabled. The
// caller keeps ownership of frame.
func (e *Engine) DeliverCapturedVideo(frame *video.PlanarFrame, rotation int) (bool, error) {
	if e.ExternalVideoSource() {
		return false, ErrExternalSourceActive
	}
	return e.capture(frame, rotation)
}

// checkVideo validates a planar frame handed to an entry point.
func checkVideo(frame *video.PlanarFrame, rotation int) error {
	if frame == nil {
		return fmt.Errorf("%w: nil video frame", ErrInvalidArgument)
	}
	if frame.Released() {
		return video.ErrFrameReleased
	}
	if frame.IsZeroSize() {
		return fmt.Errorf("%w: zero-size frame", video.ErrInvalidFrame)
	}
	if !video.ValidRotation(rotation) {
		return fmt.Errorf("%w: %d", video.ErrInvalidRotation, rotation)
	}
	return nil
}

// observe lends frame to fn in the observer's preferred layout and writes
// accepted changes back.
func observe(o video.Observer, frame *video.PlanarFrame, rotation int, fn func(*video.VideoFrame) bool) (bool, error) {
	vf, finish, err := video.LendVideoFrame(frame, video.FormatPreference(o), rotation)
	if err != nil {
		return false, err
	}
	ok := fn(vf)
	if err := finish(ok); err != nil {
		return false, err
	}
	return ok, nil
}

// capture runs the capture and pre-encode observers, renders the local
// preview and forwards the frame to the video sink.
func (e *Engine) capture(frame *video.PlanarFrame, rotation int) (bool, error) {
	if err := checkVideo(frame, rotation); err != nil {
		return false, err
	}
	p, err := e.snapshot()
	if err != nil {
		return false, err
	}

	if o := p.videoObserver; o != nil {
		ok, err := observe(o, frame, rotation, o.OnCaptureVideoFrame)
		if err != nil {
			return false, err
		}
		e.counters.count(StageCapture, ok)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"function":  "capture",
				"timestamp": frame.Timestamp(),
			}).Debug("Captured frame dropped by observer")
			return false, nil
		}

		ok, err = observe(o, frame, rotation, func(vf *video.VideoFrame) bool { return video.PreEncode(o, vf) })
		if err != nil {
			return false, err
		}
		e.counters.count(StagePreEncode, ok)
		if !ok {
			return false, nil
		}
	} else {
		e.counters.count(StageCapture, true)
		e.counters.count(StagePreEncode, true)
	}

	if err := e.renderToView(LocalUID, frame, rotation, p.videoObserver); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "capture",
			"error":    err.Error(),
		}).Warn("Local preview render failed")
	}

	if p.videoSink != nil {
		if err := p.videoSink.WriteVideoFrame(frame, rotation); err != nil {
			return true, fmt.Errorf("video sink: %w", err)
		}
	}
	return true, nil
}

// DeliverRemoteVideo runs the render observer on a decoded frame from
// remote user uid and draws it into that user's view. The caller keeps
// ownership of frame.
func (e *Engine) DeliverRemoteVideo(uid uint32, frame *video.PlanarFrame, rotation int) (bool, error) {
	if err := checkVideo(frame, rotation); err != nil {
		return false, err
	}
	p, err := e.snapshot()
	if err != nil {
		return false, err
	}

	if o := p.videoObserver; o != nil {
		ok, err := observe(o, frame, rotation, func(vf *video.VideoFrame) bool {
			return o.OnRenderVideoFrame(uid, vf)
		})
		if err != nil {
			return false, err
		}
		e.counters.count(StageRender, ok)
		if !ok {
			return false, nil
		}
	} else {
		e.counters.count(StageRender, true)
	}

	if err := e.renderToView(uid, frame, rotation, p.videoObserver); err != nil {
		return true, err
	}
	return true, nil
}
