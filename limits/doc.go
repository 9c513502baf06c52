// Package limits provides centralized frame size constants and validation
// functions for the raw data layer. It keeps dimension, stride and sample
// format checks consistent between the audio, video and engine packages.
//
// # Limit Hierarchy
//
//   - MaxVideoDimension (8192 pixels): the largest width or height a video
//     frame may declare. Larger values are treated as corrupt descriptors.
//
//   - MaxVideoBuffer (8192*8192*4 bytes): the largest plane or packed buffer
//     the layer will allocate for a single frame.
//
//   - MinSampleRate / MaxSampleRate (8 kHz to 96 kHz): accepted PCM rates.
//
//   - MaxAudioChannels (2): mono or interleaved stereo.
//
// # Validation Functions
//
//	if err := limits.ValidateVideoDimensions(width, height); err != nil {
//	    // ErrInvalidDimensions, wrapped with the offending values
//	}
//
//	if err := limits.ValidateAudioFormat(rate, channels); err != nil {
//	    // ErrInvalidSampleRate or ErrInvalidChannels
//	}
//
// All errors are sentinel values wrapped with context, so callers classify
// them with errors.Is.
package limits
