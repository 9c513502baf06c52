package main

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rawdata/av/video"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeI420 writes a uniform I420 frame with the given luma to a temp file.
func writeI420(t *testing.T, width, height int, luma byte) string {
	t.Helper()
	buf := make([]byte, video.CalcBufferSize(video.VideoTypeI420, width, height))
	for i := range buf {
		buf[i] = 128
	}
	for i := 0; i < width*height; i++ {
		buf[i] = luma
	}
	path := filepath.Join(t.TempDir(), "frame.yuv")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", "--type", "I420", "--width", "16", "--height", "16")
	require.NoError(t, err)

	assert.Contains(t, out, "buffer: 384 bytes")
	assert.Contains(t, out, "plane Y: stride 16, 256 bytes")
	assert.Contains(t, out, "plane U: stride 8, 64 bytes")
}

func TestInfo_PackedAndErrors(t *testing.T) {
	out, err := run(t, "info", "--type", "YUY2", "--width", "16", "--height", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "buffer: 64 bytes")
	assert.NotContains(t, out, "plane")

	_, err = run(t, "info", "--type", "H264")
	assert.ErrorIs(t, err, video.ErrUnsupportedFormat)

	_, err = run(t, "info", "--width", "0")
	assert.Error(t, err)
}

func TestInfo_Environment(t *testing.T) {
	t.Setenv("RAWFRAME_TYPE", "NV12")
	t.Setenv("RAWFRAME_WIDTH", "32")
	t.Setenv("RAWFRAME_HEIGHT", "16")

	out, err := run(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "type:   NV12")
	assert.Contains(t, out, "buffer: 768 bytes")
}

func TestInfo_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rawframe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: RGB24\nwidth: 20\nheight: 10\n"), 0o644))

	out, err := run(t, "info", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "size:   20x10")
	assert.Contains(t, out, "buffer: 600 bytes")

	// Flags win over the file
	out, err = run(t, "info", "--config", path, "--width", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "buffer: 300 bytes")
}

func TestConvert_I420ToRGBA(t *testing.T) {
	in := writeI420(t, 16, 16, 235)
	outPath := filepath.Join(t.TempDir(), "frame.rgba")

	out, err := run(t, "convert", "--in", in, "--width", "16", "--height", "16", "--to", "RGBA", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 1024 bytes of RGBA")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Len(t, data, 1024)
	for i, b := range data {
		require.Equal(t, byte(255), b, "byte %d", i)
	}
}

func TestConvert_RotateAndPreview(t *testing.T) {
	in := writeI420(t, 32, 16, 100)
	pngPath := filepath.Join(t.TempDir(), "preview.png")

	_, err := run(t, "convert", "--in", in, "--width", "32", "--height", "16", "--rotate", "90", "--png", pngPath)
	require.NoError(t, err)

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestConvert_Scale(t *testing.T) {
	in := writeI420(t, 32, 32, 80)
	outPath := filepath.Join(t.TempDir(), "frame.nv12")

	_, err := run(t, "convert", "--in", in, "--width", "32", "--height", "32",
		"--scale-width", "16", "--scale-height", "16", "--to", "NV12", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, data, video.CalcBufferSize(video.VideoTypeNV12, 16, 16))
	assert.Equal(t, byte(80), data[0])
}

func TestConvert_Errors(t *testing.T) {
	in := writeI420(t, 16, 16, 16)
	out := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unsupported target", []string{"--to", "MJPG", "--out", out}, video.ErrUnsupportedConversion},
		{"bad rotation", []string{"--rotate", "45", "--out", out}, video.ErrInvalidRotation},
		{"short input", []string{"--width", "64", "--out", out}, video.ErrInvalidFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"convert", "--in", in, "--width", "16", "--height", "16"}, tt.args...)
			_, err := run(t, args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := run(t, "convert", "--width", "16", "--height", "16", "--out", out)
	assert.EqualError(t, err, "--in is required")

	_, err = run(t, "convert", "--in", in, "--width", "16", "--height", "16")
	assert.Error(t, err)
}
