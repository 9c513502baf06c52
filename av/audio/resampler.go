package audio

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rawdata/limits"
)

// Resampler converts interleaved PCM16 between sample rates.
//
// Uses linear interpolation, which is adequate for voice and for the small
// ratio changes between common device rates (44.1 kHz <-> 48 kHz). State is
// carried across calls so consecutive frames join without a discontinuity:
// output runs one input frame behind, and the frame held back from each call
// is interpolated against the first frame of the next.
type Resampler struct {
	inputRate   int
	outputRate  int
	channels    int
	primed      bool
	lastSamples []int16 // last input frame of the previous call, one per channel
	position    int     // next read position in 1/outputRate frames; -outputRate is lastSamples
}

// ResamplerConfig holds configuration for creating a resampler.
type ResamplerConfig struct {
	InputRate  int // Input sample rate in Hz
	OutputRate int // Output sample rate in Hz
	Channels   int // 1 = mono, 2 = interleaved stereo
}

// NewResampler creates a new audio resampler instance.
//
// Parameters:
//   - config: Resampler configuration
//
// Returns:
//   - *Resampler: New resampler instance
//   - error: Validation error for unsupported rates or channel counts
func NewResampler(config ResamplerConfig) (*Resampler, error) {
	if err := limits.ValidateAudioFormat(config.InputRate, config.Channels); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":   "NewResampler",
			"input_rate": config.InputRate,
			"channels":   config.Channels,
			"error":      err.Error(),
		}).Error("Resampler input format validation failed")
		return nil, fmt.Errorf("resampler input: %w", err)
	}
	if err := limits.ValidateAudioFormat(config.OutputRate, config.Channels); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "NewResampler",
			"output_rate": config.OutputRate,
			"error":       err.Error(),
		}).Error("Resampler output format validation failed")
		return nil, fmt.Errorf("resampler output: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewResampler",
		"input_rate":  config.InputRate,
		"output_rate": config.OutputRate,
		"channels":    config.Channels,
	}).Debug("Audio resampler created")

	return &Resampler{
		inputRate:   config.InputRate,
		outputRate:  config.OutputRate,
		channels:    config.Channels,
		lastSamples: make([]int16, config.Channels),
		position:    -config.OutputRate,
	}, nil
}

// Resample converts samples from the input rate to the output rate.
//
// The input must contain whole frames (len(input) divisible by the channel
// count). Same-rate input is returned as a copy. The number of output frames
// varies between calls so that the total output never drifts from the total
// input scaled by the rate ratio.
func (r *Resampler) Resample(input []int16) ([]int16, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("empty input samples")
	}
	if len(input)%r.channels != 0 {
		return nil, fmt.Errorf("input samples (%d) not aligned to channel count (%d)", len(input), r.channels)
	}

	if r.inputRate == r.outputRate {
		out := make([]int16, len(input))
		copy(out, input)
		return out, nil
	}

	// The first frame of a stream stands in for the frame before it.
	if !r.primed {
		copy(r.lastSamples, input[:r.channels])
		r.primed = true
	}

	inputFrames := len(input) / r.channels
	output := make([]int16, 0, r.outputFrames(inputFrames)*r.channels)

	end := (inputFrames - 1) * r.outputRate
	for r.position < end {
		index := floorDiv(r.position, r.outputRate)
		frac := float64(r.position-index*r.outputRate) / float64(r.outputRate)
		for ch := 0; ch < r.channels; ch++ {
			output = append(output, r.interpolate(input, index, frac, ch))
		}
		r.position += r.inputRate
	}

	r.position -= inputFrames * r.outputRate
	copy(r.lastSamples, input[len(input)-r.channels:])

	logrus.WithFields(logrus.Fields{
		"function":      "Resampler.Resample",
		"input_frames":  inputFrames,
		"output_frames": len(output) / r.channels,
		"ratio":         float64(r.inputRate) / float64(r.outputRate),
	}).Debug("Resampled PCM block")

	return output, nil
}

// interpolate returns the sample for one channel between input frames index
// and index+1. Index -1 refers to the last frame of the previous call.
func (r *Resampler) interpolate(input []int16, index int, frac float64, ch int) int16 {
	var s1 int16
	if index < 0 {
		s1 = r.lastSamples[ch]
	} else {
		s1 = input[index*r.channels+ch]
	}
	s2 := input[(index+1)*r.channels+ch]
	return int16(math.Round(float64(s1)*(1.0-frac) + float64(s2)*frac))
}

// outputFrames is the number of frames the next Resample call produces
// from inputFrames frames of input.
func (r *Resampler) outputFrames(inputFrames int) int {
	span := (inputFrames-1)*r.outputRate - r.position
	if span <= 0 {
		return 0
	}
	return (span + r.inputRate - 1) / r.inputRate
}

// InputFramesFor returns the smallest number of input frames for which the
// next Resample call produces at least outputFrames frames.
func (r *Resampler) InputFramesFor(outputFrames int) int {
	if outputFrames <= 0 {
		return 0
	}
	if r.inputRate == r.outputRate {
		return outputFrames
	}
	last := r.position + (outputFrames-1)*r.inputRate
	return floorDiv(last, r.outputRate) + 2
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// InputRate returns the configured input sample rate.
func (r *Resampler) InputRate() int { return r.inputRate }

// OutputRate returns the configured output sample rate.
func (r *Resampler) OutputRate() int { return r.outputRate }

// Channels returns the configured channel count.
func (r *Resampler) Channels() int { return r.channels }

// Reset clears the interpolation state, for use after a stream discontinuity.
func (r *Resampler) Reset() {
	r.position = -r.outputRate
	r.primed = false
	clear(r.lastSamples)
}

// Remix converts interleaved samples between mono and stereo.
//
// Mono to stereo duplicates each sample; stereo to mono averages each pair.
// Equal channel counts return the input slice unchanged.
func Remix(samples []int16, inChannels, outChannels int) ([]int16, error) {
	if inChannels == outChannels {
		return samples, nil
	}
	switch {
	case inChannels == 1 && outChannels == 2:
		out := make([]int16, len(samples)*2)
		for i, s := range samples {
			out[2*i] = s
			out[2*i+1] = s
		}
		return out, nil
	case inChannels == 2 && outChannels == 1:
		if len(samples)%2 != 0 {
			return nil, fmt.Errorf("stereo input has odd sample count %d", len(samples))
		}
		out := make([]int16, len(samples)/2)
		for i := range out {
			out[i] = int16((int32(samples[2*i]) + int32(samples[2*i+1])) / 2)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: remix %d -> %d channels", limits.ErrInvalidChannels, inChannels, outChannels)
	}
}
