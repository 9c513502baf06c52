package video

import "errors"

// Sentinel errors for video frame operations.
// These errors enable reliable error classification using errors.Is().

// Frame lifetime errors.
var (
	// ErrFrameReleased indicates an operation on a frame after Release.
	ErrFrameReleased = errors.New("video frame already released")
)

// Validation errors.
var (
	// ErrInvalidFrame indicates inconsistent dimensions, strides or buffers.
	ErrInvalidFrame = errors.New("invalid video frame")

	// ErrInvalidPlane indicates a plane outside Y, U and V.
	ErrInvalidPlane = errors.New("invalid plane")

	// ErrInvalidRotation indicates a rotation other than 0, 90, 180 or 270.
	ErrInvalidRotation = errors.New("invalid rotation")

	// ErrInvalidCrop indicates a crop rectangle outside the source buffer.
	ErrInvalidCrop = errors.New("invalid crop rectangle")

	// ErrUnsupportedFormat indicates a pixel format the layer does not accept.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
)

// Conversion errors.
var (
	// ErrUnsupportedConversion indicates a source/destination type pair with no conversion.
	ErrUnsupportedConversion = errors.New("unsupported video type conversion")

	// ErrHeightMismatch indicates source and destination heights differ.
	ErrHeightMismatch = errors.New("source and destination heights differ")

	// ErrBufferTooSmall indicates a destination buffer smaller than the converted frame.
	ErrBufferTooSmall = errors.New("destination buffer too small")
)
