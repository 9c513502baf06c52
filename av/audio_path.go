package av

import (
	"fmt"

	"github.com/opd-ai/rawdata/av/audio"
	"github.com/sirupsen/logrus"
)

// checkAudio validates a frame handed to an entry point.
func checkAudio(frame *audio.Frame) error {
	if frame == nil {
		return fmt.Errorf("%w: nil audio frame", ErrInvalidArgument)
	}
	return frame.Validate()
}

// DeliverRecordedAudio runs the record observer on a captured frame and
// forwards accepted frames to the audio sink. It reports whether the frame
// was accepted.
func (e *Engine) DeliverRecordedAudio(frame *audio.Frame) (bool, error) {
	if err := checkAudio(frame); err != nil {
		return false, err
	}
	p, err := e.snapshot()
	if err != nil {
		return false, err
	}

	ok := p.audioObserver == nil || p.audioObserver.OnRecordAudioFrame(frame)
	e.counters.count(StageRecord, ok)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "DeliverRecordedAudio",
			"samples":  frame.Samples,
		}).Debug("Recorded audio frame dropped by observer")
		return false, nil
	}

	if p.audioSink != nil {
		if err := p.audioSink.WriteRecordedAudio(frame); err != nil {
			return true, fmt.Errorf("audio sink: %w", err)
		}
	}
	return true, nil
}

// DeliverPlaybackAudioBeforeMixing runs the per-stream playback observer for
// remote user uid. It reports whether the frame should be mixed.
func (e *Engine) DeliverPlaybackAudioBeforeMixing(uid uint32, frame *audio.Frame) (bool, error) {
	return e.deliverAudio(StagePlaybackBeforeMixing, frame, func(o audio.Observer) bool {
		return o.OnPlaybackAudioFrameBeforeMixing(uid, frame)
	})
}

// DeliverMixedAudio runs the observer on the mix of recorded and playback
// audio.
func (e *Engine) DeliverMixedAudio(frame *audio.Frame) (bool, error) {
	return e.deliverAudio(StageMixed, frame, func(o audio.Observer) bool {
		return o.OnMixedAudioFrame(frame)
	})
}

// DeliverPlaybackAudio runs the observer on the frame about to be played.
func (e *Engine) DeliverPlaybackAudio(frame *audio.Frame) (bool, error) {
	return e.deliverAudio(StagePlayback, frame, func(o audio.Observer) bool {
		return o.OnPlaybackAudioFrame(frame)
	})
}

func (e *Engine) deliverAudio(stage Stage, frame *audio.Frame, call func(audio.Observer) bool) (bool, error) {
	if err := checkAudio(frame); err != nil {
		return false, err
	}
	p, err := e.snapshot()
	if err != nil {
		return false, err
	}
	ok := p.audioObserver == nil || call(p.audioObserver)
	e.counters.count(stage, ok)
	return ok, nil
}

// PushAudioFrame pushes a recorded frame without transferring ownership of
// its buffer. It is PushAudioFrameFrom(AudioRecordingSource, frame, false).
func (e *Engine) PushAudioFrame(frame *audio.Frame) error {
	return e.PushAudioFrameFrom(AudioRecordingSource, frame, false)
}

// PushAudioFrameFrom pushes externally produced audio into the pipeline.
//
// With wrap true the engine takes ownership of frame.Buffer and may keep it
// without copying; the caller must not reuse it. With wrap false the
// engine copies what it keeps.
//
// Recording frames pass through the record observer to the audio sink.
// Playout frames are queued for PullAudioFrame in the engine playout
// format, converting sample rate and channel count when they differ.
func (e *Engine) PushAudioFrameFrom(source MediaSourceType, frame *audio.Frame, wrap bool) error {
	if err := checkAudio(frame); err != nil {
		return err
	}
	if e.Released() {
		return ErrEngineReleased
	}

	switch source {
	case AudioRecordingSource:
		f := frame
		if !wrap {
			f = frame.Clone()
		}
		_, err := e.DeliverRecordedAudio(f)
		return err
	case AudioPlayoutSource:
		return e.enqueuePlayout(frame, wrap)
	default:
		return fmt.Errorf("%w: media source %d", ErrInvalidArgument, source)
	}
}

func (e *Engine) enqueuePlayout(frame *audio.Frame, wrap bool) error {
	var data []byte
	if frame.SamplesPerSec == e.opts.PlayoutSampleRate && frame.Channels == e.opts.PlayoutChannels {
		data = frame.Buffer[:frame.RequiredSize()]
		if !wrap {
			data = append([]byte(nil), data...)
		}
	} else {
		converted, err := e.convertForPlayout(frame)
		if err != nil {
			return err
		}
		data = converted
	}

	if err := e.playout.Push(data); err != nil {
		e.counters.playoutRejected.Add(1)
		logrus.WithFields(logrus.Fields{
			"function": "PushAudioFrameFrom",
			"bytes":    len(data),
			"queued":   e.playout.Len(),
		}).Warn("Playout queue full, frame rejected")
		return err
	}
	return nil
}

// convertForPlayout remixes and resamples frame into the playout format.
func (e *Engine) convertForPlayout(frame *audio.Frame) ([]byte, error) {
	samples, err := audio.Remix(frame.Int16s(), frame.Channels, e.opts.PlayoutChannels)
	if err != nil {
		return nil, err
	}
	if frame.SamplesPerSec == e.opts.PlayoutSampleRate {
		return audio.EncodePCM16(samples), nil
	}

	e.pushMu.Lock()
	defer e.pushMu.Unlock()
	if e.pushResampler == nil || e.pushResampler.InputRate() != frame.SamplesPerSec {
		r, err := audio.NewResampler(audio.ResamplerConfig{
			InputRate:  frame.SamplesPerSec,
			OutputRate: e.opts.PlayoutSampleRate,
			Channels:   e.opts.PlayoutChannels,
		})
		if err != nil {
			return nil, err
		}
		e.pushResampler = r
	}
	out, err := e.pushResampler.Resample(samples)
	if err != nil {
		return nil, err
	}
	return audio.EncodePCM16(out), nil
}

// PullAudioFrame fills frame from the playout queue in the sample rate and
// channel count frame requests, then runs the playback observer. Queue
// underruns are filled with silence, and a frame the observer drops is
// returned as silence.
func (e *Engine) PullAudioFrame(frame *audio.Frame) error {
	if err := checkAudio(frame); err != nil {
		return err
	}
	if e.Released() {
		return ErrEngineReleased
	}

	samples, err := e.readPlayout(frame.Samples, frame.SamplesPerSec, frame.Channels)
	if err != nil {
		return err
	}
	if err := frame.PutInt16s(samples); err != nil {
		return err
	}

	ok, err := e.DeliverPlaybackAudio(frame)
	if err != nil {
		return err
	}
	if !ok {
		frame.Silence()
	}
	return nil
}

// readPlayout dequeues enough playout audio for n samples per channel at
// rate and channels, converting from the playout format.
func (e *Engine) readPlayout(n, rate, channels int) ([]int16, error) {
	e.pullMu.Lock()
	defer e.pullMu.Unlock()

	playRate := e.opts.PlayoutSampleRate
	want := n * channels
	if rate == playRate {
		e.pullPending = nil
		samples, short, err := e.dequeuePlayout(n, channels)
		e.countUnderrun(short)
		return samples, err
	}

	if e.pullResampler == nil || e.pullResampler.OutputRate() != rate || e.pullResampler.Channels() != channels {
		r, err := audio.NewResampler(audio.ResamplerConfig{
			InputRate:  playRate,
			OutputRate: rate,
			Channels:   channels,
		})
		if err != nil {
			return nil, err
		}
		e.pullResampler = r
		e.pullPending = nil
	}

	out := e.pullPending
	e.pullPending = nil
	// The nominal read keeps the queue in step with the requested duration.
	// A second read covers the odd frame the rate ratio leaves short.
	need := n - len(out)/channels
	srcFrames := (need*playRate + rate - 1) / rate
	underrun := false
	for len(out) < want {
		samples, short, err := e.dequeuePlayout(srcFrames, channels)
		if err != nil {
			return nil, err
		}
		underrun = underrun || short
		if samples, err = e.pullResampler.Resample(samples); err != nil {
			return nil, err
		}
		out = append(out, samples...)
		srcFrames = max(e.pullResampler.InputFramesFor((want-len(out))/channels), 1)
	}
	e.countUnderrun(underrun)

	if len(out) > want {
		e.pullPending = append([]int16(nil), out[want:]...)
		out = out[:want]
	}
	return out, nil
}

// dequeuePlayout reads frames playout frames and remixes them to channels.
// Missing audio is read as silence and reported as short.
func (e *Engine) dequeuePlayout(frames, channels int) ([]int16, bool, error) {
	buf := make([]byte, frames*e.opts.PlayoutChannels*2)
	got := e.playout.Read(buf)
	if got < len(buf) {
		logrus.WithFields(logrus.Fields{
			"function": "PullAudioFrame",
			"wanted":   len(buf),
			"got":      got,
		}).Debug("Playout underrun, padding with silence")
	}
	samples, err := audio.Remix(audio.DecodePCM16(buf), e.opts.PlayoutChannels, channels)
	return samples, got < len(buf), err
}

func (e *Engine) countUnderrun(short bool) {
	if short {
		e.counters.playoutUnderruns.Add(1)
	}
}
