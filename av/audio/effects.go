package audio

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MaxGain is the largest linear gain accepted by ApplyGain (about +12 dB).
const MaxGain = 4.0

// ApplyGain scales every sample of frame in place by a linear gain factor.
//
// Gain values: 0.0 = silence, 1.0 = no change, >1.0 = amplification.
// Samples that would overflow int16 are clipped; the number of clipped
// samples is returned so observers can surface distortion.
//
// ApplyGain is safe to call from an observer callback, where in-place
// modification is the intended way to alter the delivered audio.
func ApplyGain(frame *Frame, gain float64) (int, error) {
	if gain < 0.0 || gain > MaxGain {
		return 0, fmt.Errorf("gain out of range [0, %.1f]: %f", MaxGain, gain)
	}
	if err := frame.Validate(); err != nil {
		return 0, err
	}

	samples := frame.Int16s()
	clipped := 0
	for i, sample := range samples {
		scaled := float64(sample) * gain
		switch {
		case scaled > 32767.0:
			samples[i] = 32767
			clipped++
		case scaled < -32768.0:
			samples[i] = -32768
			clipped++
		default:
			samples[i] = int16(scaled)
		}
	}
	if err := frame.PutInt16s(samples); err != nil {
		return 0, err
	}

	if clipped > 0 {
		logrus.WithFields(logrus.Fields{
			"function":      "ApplyGain",
			"clipped_count": clipped,
			"total_samples": len(samples),
			"gain":          gain,
		}).Warn("Audio clipping detected during gain processing")
	}

	return clipped, nil
}

// PeakLevel returns the largest absolute sample value of frame normalised to [0, 1].
func PeakLevel(frame *Frame) float64 {
	peak := 0
	for _, s := range frame.Int16s() {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return float64(peak) / 32768.0
}
