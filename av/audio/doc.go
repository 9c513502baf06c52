// Package audio defines the PCM frame representation and the audio
// interception contract of the raw data layer.
//
// # Frames
//
// A Frame describes one block of interleaved signed 16-bit little-endian PCM:
//
//	frame, err := audio.NewFrame(480, 2, 48000) // 10 ms of 48 kHz stereo
//	samples := frame.Int16s()
//	// ... modify samples ...
//	err = frame.PutInt16s(samples)
//
// Buffer must hold at least Samples*BytesPerSample*Channels bytes;
// Frame.Validate enforces this together with the format limits from the
// limits package.
//
// # Observers
//
// An Observer receives frames at four fixed interception points:
//
//	record -> (network) -> before-mixing (per uid) -> mixed -> playback
//
// Each callback returns true to deliver the frame and false to drop it.
// Frames are borrowed: they are valid only for the callback's extent, and
// in-place modifications reach downstream stages only when the callback
// returns true. ObserverFuncs adapts plain functions when only some points
// are of interest.
//
// # Format Conversion
//
// Resampler performs stateful linear-interpolation rate conversion and Remix
// converts between mono and stereo. The engine uses both to serve pull
// requests in whatever format the caller asks for.
//
// # Thread Safety
//
// Frame values are not synchronized. Resampler is not safe for concurrent
// use; give each stream its own instance.
package audio
