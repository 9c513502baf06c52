package audio

// Observer intercepts PCM frames at the four audio interception points.
//
// Every method is invoked synchronously on a pipeline goroutine and must not
// block. Returning true delivers the (possibly modified) frame downstream;
// returning false drops it. Dropping is back-pressure, not an error.
//
// Different methods may be called concurrently from different pipeline
// goroutines; implementations that share state across methods must
// synchronize it themselves.
type Observer interface {
	// OnRecordAudioFrame sees raw microphone capture before processing.
	OnRecordAudioFrame(frame *Frame) bool

	// OnPlaybackAudioFrame sees the frame handed to the audio output device.
	OnPlaybackAudioFrame(frame *Frame) bool

	// OnMixedAudioFrame sees the mixed output of every remote user.
	OnMixedAudioFrame(frame *Frame) bool

	// OnPlaybackAudioFrameBeforeMixing sees one remote user's frame before mixing.
	OnPlaybackAudioFrameBeforeMixing(uid uint32, frame *Frame) bool
}

// ObserverFuncs adapts plain functions to Observer. A nil field accepts
// every frame unchanged.
type ObserverFuncs struct {
	Record            func(frame *Frame) bool
	Playback          func(frame *Frame) bool
	Mixed             func(frame *Frame) bool
	PlaybackBeforeMix func(uid uint32, frame *Frame) bool
}

// OnRecordAudioFrame implements Observer.
func (o ObserverFuncs) OnRecordAudioFrame(frame *Frame) bool {
	if o.Record == nil {
		return true
	}
	return o.Record(frame)
}

// OnPlaybackAudioFrame implements Observer.
func (o ObserverFuncs) OnPlaybackAudioFrame(frame *Frame) bool {
	if o.Playback == nil {
		return true
	}
	return o.Playback(frame)
}

// OnMixedAudioFrame implements Observer.
func (o ObserverFuncs) OnMixedAudioFrame(frame *Frame) bool {
	if o.Mixed == nil {
		return true
	}
	return o.Mixed(frame)
}

// OnPlaybackAudioFrameBeforeMixing implements Observer.
func (o ObserverFuncs) OnPlaybackAudioFrameBeforeMixing(uid uint32, frame *Frame) bool {
	if o.PlaybackBeforeMix == nil {
		return true
	}
	return o.PlaybackBeforeMix(uid, frame)
}
