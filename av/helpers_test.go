package av

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawdata/av/audio"
	"github.com/opd-ai/rawdata/av/render"
	"github.com/opd-ai/rawdata/av/video"
)

func newTestEngine(t *testing.T, opts *Options) *Engine {
	t.Helper()
	e, err := NewEngine(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Release() })
	return e
}

// newPCMFrame returns a frame whose samples are all value.
func newPCMFrame(t *testing.T, samples, channels, rate int, value int16) *audio.Frame {
	t.Helper()
	f, err := audio.NewFrame(samples, channels, rate)
	require.NoError(t, err)
	pcm := make([]int16, samples*channels)
	for i := range pcm {
		pcm[i] = value
	}
	require.NoError(t, f.PutInt16s(pcm))
	return f
}

func newI420(t *testing.T, width, height int) *video.PlanarFrame {
	t.Helper()
	f, err := video.NewPlanarFrame(video.VideoTypeI420, width, height)
	require.NoError(t, err)
	for p := video.PlaneY; p < video.NumPlanes; p++ {
		b := f.Buffer(p)
		for i := range b {
			b[i] = 128
		}
	}
	t.Cleanup(func() { _ = f.Release() })
	return f
}

func newExternalI420(width, height int) *video.ExternalVideoFrame {
	buf := make([]byte, video.CalcBufferSize(video.VideoTypeI420, width, height))
	for i := range buf {
		buf[i] = 128
	}
	return &video.ExternalVideoFrame{
		Type:   video.BufferTypeRawData,
		Format: video.PixelI420,
		Buffer: buf,
		Stride: width,
		Height: height,
	}
}

// recordingSink captures what reaches the sinks.
type recordingSink struct {
	mu         sync.Mutex
	audioTimes []int64
	videoTimes []uint32
	videoSizes [][2]int
	lumas      []byte
}

func (s *recordingSink) WriteRecordedAudio(frame *audio.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioTimes = append(s.audioTimes, frame.RenderTimeMs)
	return nil
}

func (s *recordingSink) WriteVideoFrame(frame *video.PlanarFrame, rotation int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoTimes = append(s.videoTimes, frame.Timestamp())
	s.videoSizes = append(s.videoSizes, [2]int{frame.Width(), frame.Height()})
	s.lumas = append(s.lumas, frame.Buffer(video.PlaneY)[0])
	return nil
}

// delivery is one DeliverFrame call seen by a mockRenderer.
type delivery struct {
	width        int
	rotation     int
	mirrored     bool
	renderTimeMs int64
}

type mockRenderer struct {
	mu         sync.Mutex
	initErr    error
	releases   int
	deliveries []delivery
}

func (m *mockRenderer) Initialize() error { return m.initErr }

func (m *mockRenderer) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases++
}

func (m *mockRenderer) DeliverFrame(frame *video.PlanarFrame, rotation int, mirrored bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries = append(m.deliveries, delivery{
		width:        frame.Width(),
		rotation:     rotation,
		mirrored:     mirrored,
		renderTimeMs: frame.RenderTimeMs(),
	})
	return nil
}

func (m *mockRenderer) snapshot() (releases int, deliveries []delivery) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releases, append([]delivery(nil), m.deliveries...)
}

// mockFactory hands out one renderer and keeps the context it was given.
type mockFactory struct {
	renderer *mockRenderer
	ctx      render.Context
}

func (f *mockFactory) CreateRenderInstance(ctx render.Context) (render.Renderer, error) {
	f.ctx = ctx
	return f.renderer, nil
}

var fitView = render.Context{RenderMode: render.ModeFit}
