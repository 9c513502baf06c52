package av

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockTimeProvider implements TimeProvider for deterministic testing.
type mockTimeProvider struct {
	currentTime time.Time
}

// Now returns the mock current time.
func (m *mockTimeProvider) Now() time.Time {
	return m.currentTime
}

// Advance moves the mock time forward by the given duration.
func (m *mockTimeProvider) Advance(d time.Duration) {
	m.currentTime = m.currentTime.Add(d)
}

func TestMediaSourceType_String(t *testing.T) {
	tests := []struct {
		source MediaSourceType
		want   string
	}{
		{AudioPlayoutSource, "playout"},
		{AudioRecordingSource, "recording"},
		{MediaSourceType(7), "MediaSourceType(7)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.source.String())
	}
}

func TestMediaSourceType_Values(t *testing.T) {
	assert.Equal(t, MediaSourceType(0), AudioPlayoutSource)
	assert.Equal(t, MediaSourceType(1), AudioRecordingSource)
	assert.Equal(t, uint32(0), LocalUID)
}

func TestMockTimeProvider_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tp := &mockTimeProvider{currentTime: start}
	tp.Advance(40 * time.Millisecond)
	assert.Equal(t, start.Add(40*time.Millisecond), tp.Now())
}
