package av

import (
	"errors"

	"github.com/opd-ai/rawdata/av/audio"
	"github.com/opd-ai/rawdata/av/render"
	"github.com/opd-ai/rawdata/av/video"
	"github.com/opd-ai/rawdata/limits"
)

// Sentinel errors for engine operations.
// These errors enable reliable error classification using errors.Is().

// Engine state errors.
var (
	// ErrEngineReleased indicates a call after Release.
	ErrEngineReleased = errors.New("media engine released")

	// ErrExternalSourceDisabled indicates PushVideoFrame without an enabled external source.
	ErrExternalSourceDisabled = errors.New("external video source not enabled")

	// ErrExternalSourceActive indicates a device capture while the external source owns video input.
	ErrExternalSourceActive = errors.New("external video source active")
)

// Argument errors.
var (
	// ErrInvalidArgument indicates a nil or malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotSupported indicates a feature this engine does not provide.
	ErrNotSupported = errors.New("not supported")
)

// Playout errors.
var (
	// ErrPlayoutQueueFull indicates pushed audio would exceed the playout queue limit.
	ErrPlayoutQueueFull = errors.New("playout queue full")
)

// Status codes returned to callers that need the integer contract.
const (
	StatusOK             = 0
	StatusFailed         = -1
	StatusInvalidArg     = -2
	StatusNotReady       = -3
	StatusNotSupported   = -4
	StatusRefused        = -5
	StatusBufferTooSmall = -6
	StatusNotInitialized = -7
)

// StatusCode maps an error from this module to its integer status code.
// Unknown errors map to StatusFailed.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, video.ErrBufferTooSmall), errors.Is(err, audio.ErrBufferTooSmall):
		return StatusBufferTooSmall
	case errors.Is(err, ErrNotSupported),
		errors.Is(err, video.ErrUnsupportedConversion),
		errors.Is(err, video.ErrUnsupportedFormat),
		errors.Is(err, audio.ErrUnsupportedFrameType):
		return StatusNotSupported
	case errors.Is(err, ErrEngineReleased),
		errors.Is(err, render.ErrNotInitialized),
		errors.Is(err, render.ErrSessionReleased),
		errors.Is(err, video.ErrFrameReleased):
		return StatusNotInitialized
	case errors.Is(err, ErrExternalSourceDisabled):
		return StatusNotReady
	case errors.Is(err, ErrExternalSourceActive), errors.Is(err, ErrPlayoutQueueFull):
		return StatusRefused
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, video.ErrInvalidFrame),
		errors.Is(err, video.ErrInvalidPlane),
		errors.Is(err, video.ErrInvalidRotation),
		errors.Is(err, video.ErrInvalidCrop),
		errors.Is(err, video.ErrHeightMismatch),
		errors.Is(err, audio.ErrInvalidFrame),
		errors.Is(err, render.ErrInvalidContext),
		errors.Is(err, limits.ErrInvalidDimensions),
		errors.Is(err, limits.ErrInvalidSampleRate),
		errors.Is(err, limits.ErrInvalidChannels):
		return StatusInvalidArg
	default:
		return StatusFailed
	}
}
