package video

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// AdjustBrightness shifts the luma of an observer frame in place by
// adjustment, clamped to [-255, 255]. RGBA frames shift every colour
// channel instead.
func AdjustBrightness(frame *VideoFrame, adjustment int) error {
	if err := frame.Validate(); err != nil {
		return err
	}
	adjustment = max(-255, min(255, adjustment))

	if frame.Type == FrameTypeRGBA {
		for y := 0; y < frame.Height; y++ {
			row := frame.YBuffer[y*frame.YStride : y*frame.YStride+frame.Width*4]
			for i := range row {
				if i%4 != 3 {
					row[i] = clampByte(int(row[i]) + adjustment)
				}
			}
		}
	} else {
		// Adjust Y plane only (luminance)
		for y := 0; y < frame.Height; y++ {
			row := frame.YBuffer[y*frame.YStride : y*frame.YStride+frame.Width]
			for i, pixel := range row {
				row[i] = clampByte(int(pixel) + adjustment)
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":   "AdjustBrightness",
		"adjustment": adjustment,
		"type":       frame.Type.String(),
	}).Debug("Adjusted brightness")

	return nil
}

// Grayscale removes colour from an observer frame in place.
func Grayscale(frame *VideoFrame) error {
	if err := frame.Validate(); err != nil {
		return err
	}

	switch frame.Type {
	case FrameTypeRGBA:
		for y := 0; y < frame.Height; y++ {
			row := frame.YBuffer[y*frame.YStride : y*frame.YStride+frame.Width*4]
			for i := 0; i < len(row); i += 4 {
				yy, _, _ := rgbToYUV(int(row[i]), int(row[i+1]), int(row[i+2]))
				r, g, b := yuvToRGB(yy, 128, 128)
				row[i], row[i+1], row[i+2] = r, g, b
			}
		}
	case FrameTypeYUV420, FrameTypeYUV422:
		// Neutral chroma
		rows := frame.Height
		if frame.Type == FrameTypeYUV420 {
			rows = (frame.Height + 1) / 2
		}
		cw := ChromaWidth(frame.Width)
		for y := 0; y < rows; y++ {
			fill(frame.UBuffer[y*frame.UStride:y*frame.UStride+cw], 128)
			fill(frame.VBuffer[y*frame.VStride:y*frame.VStride+cw], 128)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, frame.Type)
	}
	return nil
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
