// Package av is the media engine facade of the raw data layer.
//
// An Engine sits between a media pipeline and application observers. The
// pipeline's collaborators (capture devices, codecs, transport, mixer)
// stay outside: they hand frames to the Deliver entry points and receive
// accepted frames back through the return values and the AudioSink and
// VideoSink interfaces.
//
// # Observers
//
// One audio observer, one video observer and one render factory can be
// registered at a time:
//
//	engine, err := av.NewEngine(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Release()
//
//	engine.RegisterVideoFrameObserver(video.ObserverFuncs{
//	    Capture: func(f *video.VideoFrame) bool {
//	        return video.AdjustBrightness(f, 10) == nil
//	    },
//	})
//
// Every callback returns true to pass the frame on or false to drop it.
// Changes an observer makes to a frame survive only when it returns true.
//
// # Audio
//
// PushAudioFrameFrom feeds application audio into the recording path or
// the playout queue. PullAudioFrame drains the playout queue in whatever
// sample rate and channel count the caller asks for, padding underruns
// with silence.
//
// # Video
//
// With SetExternalVideoSource enabled, PushVideoFrame is the only video
// input. Pushed frames are cropped, converted to I420, optionally scaled
// and then run through the capture and pre-encode observers, the local
// preview view and the video sink.
//
// # Views
//
// SetupView creates the render target of a uid (0 is the local preview).
// When a render factory is registered each view gets its own external
// renderer; otherwise, or when the renderer fails to initialize, the
// built-in renderer is used.
//
// # Concurrency
//
// The engine starts no goroutines for frames; the only one it starts
// releases the renderer of a view its renderer reported destroyed. Each
// callback runs on the
// goroutine that called the Deliver, Push or Pull method, so a slow
// observer stalls that caller. Different callbacks, including different
// methods of the same observer, may run at the same time on different
// goroutines; observers that share state must synchronize it themselves.
//
// # Status codes
//
// Operations return Go errors. StatusCode maps them to the integer status
// contract used across the language boundary.
package av
