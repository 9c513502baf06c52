package av

import (
	"fmt"
	"time"
)

// MediaSourceType selects the audio path a pushed frame enters.
type MediaSourceType int

const (
	// AudioPlayoutSource feeds the playout queue drained by PullAudioFrame.
	AudioPlayoutSource MediaSourceType = 0
	// AudioRecordingSource feeds the record observer and the audio sink.
	AudioRecordingSource MediaSourceType = 1
)

func (s MediaSourceType) String() string {
	switch s {
	case AudioPlayoutSource:
		return "playout"
	case AudioRecordingSource:
		return "recording"
	default:
		return fmt.Sprintf("MediaSourceType(%d)", int(s))
	}
}

// LocalUID is the view uid of the local preview.
const LocalUID uint32 = 0

// TimeProvider abstracts time operations for deterministic testing.
type TimeProvider interface {
	Now() time.Time
}

// DefaultTimeProvider uses the standard library time functions.
type DefaultTimeProvider struct{}

// Now returns the current time.
func (DefaultTimeProvider) Now() time.Time { return time.Now() }
