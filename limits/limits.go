// Package limits provides centralized frame size limits for the raw data layer.
// This ensures consistent validation across the audio, video and engine packages.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxVideoDimension is the largest accepted frame width or height in pixels.
	MaxVideoDimension = 8192

	// MaxVideoBuffer is the largest buffer allocated for a single frame.
	// It covers a MaxVideoDimension square frame at 4 bytes per pixel.
	MaxVideoBuffer = MaxVideoDimension * MaxVideoDimension * 4

	// MinSampleRate is the lowest accepted PCM sample rate (narrowband telephony).
	MinSampleRate = 8000

	// MaxSampleRate is the highest accepted PCM sample rate.
	MaxSampleRate = 96000

	// MaxAudioChannels is the largest accepted channel count (interleaved stereo).
	MaxAudioChannels = 2

	// MaxAudioSamples bounds the samples per channel in one frame (1 s at MaxSampleRate).
	MaxAudioSamples = MaxSampleRate
)

var (
	// ErrInvalidDimensions indicates a non-positive or oversized frame dimension
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrInvalidStride indicates a stride smaller than the row it must hold
	ErrInvalidStride = errors.New("invalid stride")

	// ErrBufferTooLarge indicates a buffer larger than MaxVideoBuffer
	ErrBufferTooLarge = errors.New("buffer too large")

	// ErrInvalidSampleRate indicates a sample rate outside [MinSampleRate, MaxSampleRate]
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrInvalidChannels indicates a channel count outside [1, MaxAudioChannels]
	ErrInvalidChannels = errors.New("invalid channel count")

	// ErrInvalidSampleCount indicates a non-positive or oversized sample count
	ErrInvalidSampleCount = errors.New("invalid sample count")
)

// ValidateVideoDimensions checks that width and height are positive and
// no larger than MaxVideoDimension.
func ValidateVideoDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxVideoDimension || height > MaxVideoDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", ErrInvalidDimensions, width, height, MaxVideoDimension)
	}
	return nil
}

// ValidateStride checks that a row stride can hold rowBytes bytes.
func ValidateStride(stride, rowBytes int) error {
	if stride < rowBytes {
		return fmt.Errorf("%w: stride %d smaller than row size %d", ErrInvalidStride, stride, rowBytes)
	}
	if stride > MaxVideoDimension*4 {
		return fmt.Errorf("%w: stride %d exceeds limit %d", ErrInvalidStride, stride, MaxVideoDimension*4)
	}
	return nil
}

// ValidateBufferSize checks a computed allocation size against MaxVideoBuffer.
func ValidateBufferSize(size int) error {
	if size < 0 || size > MaxVideoBuffer {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrBufferTooLarge, size, MaxVideoBuffer)
	}
	return nil
}

// ValidateAudioFormat checks the sample rate and channel count of a PCM stream.
func ValidateAudioFormat(sampleRate, channels int) error {
	if sampleRate < MinSampleRate || sampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %d Hz (must be %d-%d)", ErrInvalidSampleRate, sampleRate, MinSampleRate, MaxSampleRate)
	}
	if channels < 1 || channels > MaxAudioChannels {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidChannels, channels, MaxAudioChannels)
	}
	return nil
}

// ValidateSampleCount checks the per-channel sample count of one frame.
func ValidateSampleCount(samples int) error {
	if samples <= 0 || samples > MaxAudioSamples {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidSampleCount, samples, MaxAudioSamples)
	}
	return nil
}
