package video

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestPlanar returns a frame filled with an in-gamut gradient: luma in
// [60, 190) and chroma within 8 of neutral.
func newTestPlanar(t *testing.T, vt VideoType, width, height int) *PlanarFrame {
	t.Helper()
	f, err := NewPlanarFrame(vt, width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		row := f.row(PlaneY, y)
		for x := range row {
			row[x] = byte(60 + (x+y)%130)
		}
	}
	for cy := 0; cy < f.planeRows(PlaneU); cy++ {
		u, v := f.row(PlaneU, cy), f.row(PlaneV, cy)
		for cx := range u {
			u[cx] = byte(120 + cx%16)
			v[cx] = byte(120 + cy%16)
		}
	}
	return f
}
