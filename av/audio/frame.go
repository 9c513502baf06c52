package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/opd-ai/rawdata/limits"
)

// FrameType identifies the sample encoding of an audio frame.
type FrameType int

const (
	// FrameTypePCM16 is signed 16-bit little-endian PCM, the only supported encoding.
	FrameTypePCM16 FrameType = 0
)

// BytesPerSamplePCM16 is the sample width of FrameTypePCM16.
const BytesPerSamplePCM16 = 2

func (t FrameType) String() string {
	switch t {
	case FrameTypePCM16:
		return "PCM16"
	default:
		return fmt.Sprintf("FrameType(%d)", int(t))
	}
}

var (
	// ErrUnsupportedFrameType indicates a frame type other than FrameTypePCM16.
	ErrUnsupportedFrameType = errors.New("unsupported audio frame type")

	// ErrBufferTooSmall indicates Buffer cannot hold Samples*BytesPerSample*Channels bytes.
	ErrBufferTooSmall = errors.New("audio buffer too small")

	// ErrInvalidFrame indicates a nil frame or inconsistent frame header.
	ErrInvalidFrame = errors.New("invalid audio frame")
)

// Frame is one block of interleaved PCM samples plus timing metadata.
//
// The pipeline allocates a Frame immediately before invoking an observer and
// it is only valid for the duration of that callback. Observers may modify
// Buffer in place but must not retain the Frame or slices of Buffer.
type Frame struct {
	Type           FrameType
	Samples        int // samples per channel
	BytesPerSample int // 2 for PCM16
	Channels       int // data is interleaved when stereo
	SamplesPerSec  int
	Buffer         []byte
	RenderTimeMs   int64
	AVSyncType     int
}

// NewFrame allocates a zeroed PCM16 frame for the given format.
func NewFrame(samples, channels, samplesPerSec int) (*Frame, error) {
	f := &Frame{
		Type:           FrameTypePCM16,
		Samples:        samples,
		BytesPerSample: BytesPerSamplePCM16,
		Channels:       channels,
		SamplesPerSec:  samplesPerSec,
	}
	if err := f.validateHeader(); err != nil {
		return nil, err
	}
	f.Buffer = make([]byte, f.RequiredSize())
	return f, nil
}

// RequiredSize returns Samples*BytesPerSample*Channels, the minimum Buffer length.
func (f *Frame) RequiredSize() int {
	return f.Samples * f.BytesPerSample * f.Channels
}

// Validate checks the frame header against limits and the buffer against RequiredSize.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}
	if err := f.validateHeader(); err != nil {
		return err
	}
	if len(f.Buffer) < f.RequiredSize() {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrBufferTooSmall, len(f.Buffer), f.RequiredSize())
	}
	return nil
}

func (f *Frame) validateHeader() error {
	if f.Type != FrameTypePCM16 {
		return fmt.Errorf("%w: %s", ErrUnsupportedFrameType, f.Type)
	}
	if f.BytesPerSample != BytesPerSamplePCM16 {
		return fmt.Errorf("%w: %d bytes per sample for PCM16", ErrInvalidFrame, f.BytesPerSample)
	}
	if err := limits.ValidateSampleCount(f.Samples); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	if err := limits.ValidateAudioFormat(f.SamplesPerSec, f.Channels); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	return nil
}

// Int16s decodes the interleaved samples of the frame into a new slice.
func (f *Frame) Int16s() []int16 {
	n := f.Samples * f.Channels * BytesPerSamplePCM16
	if n > len(f.Buffer) {
		n = len(f.Buffer)
	}
	return DecodePCM16(f.Buffer[:n])
}

// DecodePCM16 decodes little-endian 16-bit PCM. A trailing odd byte is ignored.
func DecodePCM16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}

// EncodePCM16 encodes samples as little-endian 16-bit PCM.
func EncodePCM16(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// PutInt16s encodes samples into Buffer in place, starting at the first sample.
// It returns ErrBufferTooSmall if Buffer cannot hold all of them.
func (f *Frame) PutInt16s(samples []int16) error {
	if len(samples)*2 > len(f.Buffer) {
		return fmt.Errorf("%w: %d samples into %d bytes", ErrBufferTooSmall, len(samples), len(f.Buffer))
	}
	for i, s := range samples {
		binary.LittleEndian.PutUint16(f.Buffer[2*i:], uint16(s))
	}
	return nil
}

// Clone returns a deep copy whose Buffer is independent of the original.
func (f *Frame) Clone() *Frame {
	clone := *f
	if f.Buffer != nil {
		clone.Buffer = make([]byte, len(f.Buffer))
		copy(clone.Buffer, f.Buffer)
	}
	return &clone
}

// Duration returns the playback duration of the frame.
func (f *Frame) Duration() time.Duration {
	if f.SamplesPerSec <= 0 {
		return 0
	}
	return time.Duration(f.Samples) * time.Second / time.Duration(f.SamplesPerSec)
}

// Silence zeroes the sample region of Buffer.
func (f *Frame) Silence() {
	n := f.RequiredSize()
	if n > len(f.Buffer) {
		n = len(f.Buffer)
	}
	clear(f.Buffer[:n])
}
