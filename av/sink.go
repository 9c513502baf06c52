package av

import (
	"github.com/opd-ai/rawdata/av/audio"
	"github.com/opd-ai/rawdata/av/video"
)

// AudioSink receives recorded audio that passed the record observer,
// typically an encoder. The frame is only valid during the call.
type AudioSink interface {
	WriteRecordedAudio(frame *audio.Frame) error
}

// VideoSink receives captured video that passed the capture and pre-encode
// observers. The frame is only valid during the call.
type VideoSink interface {
	WriteVideoFrame(frame *video.PlanarFrame, rotation int) error
}

// AudioSinkFunc adapts a function to AudioSink.
type AudioSinkFunc func(frame *audio.Frame) error

// WriteRecordedAudio calls f(frame).
func (f AudioSinkFunc) WriteRecordedAudio(frame *audio.Frame) error { return f(frame) }

// VideoSinkFunc adapts a function to VideoSink.
type VideoSinkFunc func(frame *video.PlanarFrame, rotation int) error

// WriteVideoFrame calls f(frame, rotation).
func (f VideoSinkFunc) WriteVideoFrame(frame *video.PlanarFrame, rotation int) error {
	return f(frame, rotation)
}
