package av

import (
	"fmt"
	"time"

	"github.com/opd-ai/rawdata/limits"
)

// Options configures an Engine.
type Options struct {
	// PlayoutSampleRate and PlayoutChannels are the format of the playout
	// queue. Pushed playout audio is converted to it unless it already
	// matches.
	PlayoutSampleRate int
	PlayoutChannels   int

	// PlayoutQueueLimit bounds the audio held in the playout queue.
	PlayoutQueueLimit time.Duration

	// CaptureWidth and CaptureHeight scale pushed external frames when
	// both are non-zero. Both must be even.
	CaptureWidth  int
	CaptureHeight int

	// LocalMirror mirrors the local preview.
	LocalMirror bool
}

// NewOptions returns Options with default values.
func NewOptions() *Options {
	return &Options{
		PlayoutSampleRate: 48000,
		PlayoutChannels:   2,
		PlayoutQueueLimit: 2 * time.Second,
		CaptureWidth:      0, // Scaling disabled by default
		CaptureHeight:     0,
		LocalMirror:       false,
	}
}

// Validate checks the playout format, queue limit and capture dimensions.
func (o *Options) Validate() error {
	if err := limits.ValidateAudioFormat(o.PlayoutSampleRate, o.PlayoutChannels); err != nil {
		return fmt.Errorf("%w: playout format: %w", ErrInvalidArgument, err)
	}
	if o.PlayoutQueueLimit <= 0 {
		return fmt.Errorf("%w: playout queue limit %v", ErrInvalidArgument, o.PlayoutQueueLimit)
	}
	if o.CaptureWidth == 0 && o.CaptureHeight == 0 {
		return nil
	}
	if err := limits.ValidateVideoDimensions(o.CaptureWidth, o.CaptureHeight); err != nil {
		return fmt.Errorf("%w: capture size: %w", ErrInvalidArgument, err)
	}
	if o.CaptureWidth%2 != 0 || o.CaptureHeight%2 != 0 {
		return fmt.Errorf("%w: capture size %dx%d must be even", ErrInvalidArgument, o.CaptureWidth, o.CaptureHeight)
	}
	return nil
}

// scalingEnabled reports whether pushed frames are resized.
func (o *Options) scalingEnabled() bool {
	return o.CaptureWidth > 0 && o.CaptureHeight > 0
}

// playoutBytesPerSecond returns the byte rate of the playout format.
func (o *Options) playoutBytesPerSecond() int {
	return o.PlayoutSampleRate * o.PlayoutChannels * 2
}
