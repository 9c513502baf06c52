package av

import (
	"fmt"
	"sync"

	"github.com/opd-ai/rawdata/av/audio"
	"github.com/opd-ai/rawdata/av/render"
	"github.com/opd-ai/rawdata/av/video"
	"github.com/sirupsen/logrus"
)

// Engine intercepts raw audio and video frames at fixed pipeline points and
// hands them to the registered observers.
//
// Each observer slot holds at most one observer; registering replaces the
// previous one and nil unregisters. Observers are invoked synchronously on
// the goroutine that delivers the frame, outside any engine lock, so they
// may re-register from inside a callback.
type Engine struct {
	opts Options

	// Thread safety for slots, sinks, views and state
	mu sync.RWMutex

	audioObserver audio.Observer
	videoObserver video.Observer
	renderFactory render.Factory

	audioSink AudioSink
	videoSink VideoSink

	externalSource bool
	views          map[uint32]*view
	released       bool

	// Time provider for deterministic testing.
	// If nil, DefaultTimeProvider is used.
	timeProvider TimeProvider

	playout *playoutQueue

	// Stateful resamplers, one per direction
	pushMu        sync.Mutex
	pushResampler *audio.Resampler
	pullMu        sync.Mutex
	pullResampler *audio.Resampler
	pullPending   []int16 // resampled output left over from the last pull

	scaler   *video.Scaler
	counters engineCounters
}

// NewEngine creates an engine. A nil opts uses NewOptions().
//
// Parameters:
//   - opts: Playout format, capture scaling and preview options
//
// Returns:
//   - *Engine: The new engine instance
//   - error: Any error in opts
func NewEngine(opts *Options) (*Engine, error) {
	logrus.WithFields(logrus.Fields{
		"function": "NewEngine",
	}).Info("Creating media engine")

	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewEngine",
			"error":    err.Error(),
		}).Error("Options validation failed")
		return nil, err
	}

	limit := int(opts.PlayoutQueueLimit.Seconds() * float64(opts.playoutBytesPerSecond()))
	e := &Engine{
		opts:         *opts,
		views:        make(map[uint32]*view),
		timeProvider: DefaultTimeProvider{},
		playout:      newPlayoutQueue(limit),
		scaler:       video.NewScaler(),
	}

	logrus.WithFields(logrus.Fields{
		"function":        "NewEngine",
		"playout_rate":    opts.PlayoutSampleRate,
		"playout_channel": opts.PlayoutChannels,
		"playout_limit":   opts.PlayoutQueueLimit,
		"capture_scaling": opts.scalingEnabled(),
	}).Info("Media engine created")

	return e, nil
}

// Options returns a copy of the options the engine was created with.
func (e *Engine) Options() Options {
	return e.opts
}

// getTimeProvider returns the time provider, defaulting to DefaultTimeProvider if nil.
func (e *Engine) getTimeProvider() TimeProvider {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.timeProvider == nil {
		return DefaultTimeProvider{}
	}
	return e.timeProvider
}

// SetTimeProvider sets the time provider for deterministic testing.
// If tp is nil, DefaultTimeProvider is used.
func (e *Engine) SetTimeProvider(tp TimeProvider) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tp == nil {
		tp = DefaultTimeProvider{}
	}
	e.timeProvider = tp
}

// RegisterAudioFrameObserver installs the audio observer, replacing any
// previous one. nil unregisters.
func (e *Engine) RegisterAudioFrameObserver(o audio.Observer) error {
	return e.setSlot("RegisterAudioFrameObserver", o == nil, func() { e.audioObserver = o })
}

// RegisterVideoFrameObserver installs the video observer, replacing any
// previous one. nil unregisters.
func (e *Engine) RegisterVideoFrameObserver(o video.Observer) error {
	return e.setSlot("RegisterVideoFrameObserver", o == nil, func() { e.videoObserver = o })
}

// RegisterVideoRenderFactory installs the external render factory used by
// views set up afterwards. nil restores the built-in renderer for new views.
func (e *Engine) RegisterVideoRenderFactory(f render.Factory) error {
	return e.setSlot("RegisterVideoRenderFactory", f == nil, func() { e.renderFactory = f })
}

// SetAudioSink installs the consumer of accepted recorded audio.
func (e *Engine) SetAudioSink(s AudioSink) error {
	return e.setSlot("SetAudioSink", s == nil, func() { e.audioSink = s })
}

// SetVideoSink installs the consumer of accepted captured video.
func (e *Engine) SetVideoSink(s VideoSink) error {
	return e.setSlot("SetVideoSink", s == nil, func() { e.videoSink = s })
}

func (e *Engine) setSlot(function string, isNil bool, set func()) error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return ErrEngineReleased
	}
	set()
	e.mu.Unlock()

	action := "registered"
	if isNil {
		action = "unregistered"
	}
	logrus.WithFields(logrus.Fields{
		"function": function,
		"action":   action,
	}).Info("Engine slot updated")
	return nil
}

// pipeline is a snapshot of the slots taken for one frame.
type pipeline struct {
	audioObserver audio.Observer
	videoObserver video.Observer
	audioSink     AudioSink
	videoSink     VideoSink
}

func (e *Engine) snapshot() (pipeline, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.released {
		return pipeline{}, ErrEngineReleased
	}
	return pipeline{
		audioObserver: e.audioObserver,
		videoObserver: e.videoObserver,
		audioSink:     e.audioSink,
		videoSink:     e.videoSink,
	}, nil
}

// Release shuts the engine down: it clears every slot, releases every render
// session and drains the playout queue. Later calls return ErrEngineReleased.
func (e *Engine) Release() error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return ErrEngineReleased
	}
	e.released = true
	e.audioObserver = nil
	e.videoObserver = nil
	e.renderFactory = nil
	e.audioSink = nil
	e.videoSink = nil
	e.externalSource = false
	views := e.views
	e.views = make(map[uint32]*view)
	e.mu.Unlock()

	for _, v := range views {
		v.release()
	}
	e.playout.Drain()

	logrus.WithFields(logrus.Fields{
		"function": "Release",
		"views":    len(views),
	}).Info("Media engine released")
	return nil
}

// Released reports whether Release has been called.
func (e *Engine) Released() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.released
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine(playout %d Hz/%d ch)", e.opts.PlayoutSampleRate, e.opts.PlayoutChannels)
}
