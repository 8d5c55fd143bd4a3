// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"
)

// Converter changes the sample rate of a fully decoded Buffer. The input
// is never modified; on failure the caller still owns a usable original.
type Converter interface {
	Convert(b *Buffer, rate int) (*Buffer, error)
}

// Resampler quality names accepted by NewConverter.
const (
	QualitySoxrQuick  = "soxr-quick"
	QualitySoxrMedium = "soxr-medium"
	QualitySoxrHigh   = "soxr-high"
	QualityCubic      = "cubic"
)

// NewConverter returns the converter for a quality name. An empty name
// selects QualitySoxrHigh.
func NewConverter(quality string) (Converter, error) {
	switch quality {
	case "", QualitySoxrHigh, QualitySoxrMedium, QualitySoxrQuick:
		if quality == "" {
			quality = QualitySoxrHigh
		}
		return SoxrConverter{Quality: quality}, nil
	case QualityCubic:
		return CubicConverter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuality, quality)
	}
}

// CubicConverter runs the buffer through the streaming cubic Resampler.
type CubicConverter struct {
	ChunkSize int
}

// Convert returns b at rate; b itself is returned when the rates match.
func (c CubicConverter) Convert(b *Buffer, rate int) (*Buffer, error) {
	if rate <= 0 || b.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if b.SampleRate == rate {
		return b, nil
	}

	chunk := c.ChunkSize
	if chunk <= 0 {
		chunk = 4096
	}
	out, err := ReadAll(NewResampler(NewBufferSource(b), rate), chunk)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResample, err)
	}
	return out, nil
}

// SoxrConverter uses the polyphase FIR resampler from go-audio-resampler,
// processing each channel separately.
type SoxrConverter struct {
	Quality string
}

// Convert returns b at rate using the configured quality preset.
func (c SoxrConverter) Convert(b *Buffer, rate int) (*Buffer, error) {
	if rate <= 0 || b.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if b.SampleRate == rate {
		return b, nil
	}

	from, to := float64(b.SampleRate), float64(rate)
	switch b.Channels {
	case 1:
		out, err := c.mono(b.Data[:b.Samples()], from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResample, err)
		}
		return &Buffer{SampleRate: rate, Channels: 1, Frames: len(out), Data: out}, nil
	case 2:
		left, right := resampler.DeinterleaveFromStereoFloat32(b.Data[:b.Samples()])
		outL, outR, err := c.stereo(left, right, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResample, err)
		}
		frames := min(len(outL), len(outR))
		data := resampler.InterleaveToStereoFloat32(outL[:frames], outR[:frames])
		return &Buffer{SampleRate: rate, Channels: 2, Frames: frames, Data: data}, nil
	default:
		return nil, ErrTooManyChannels
	}
}

func (c SoxrConverter) mono(in []float32, from, to float64) ([]float32, error) {
	switch c.Quality {
	case QualitySoxrQuick:
		return resampler.ResampleMonoFloat32(in, from, to, resampler.QualityQuick)
	case QualitySoxrMedium:
		return resampler.ResampleMonoFloat32(in, from, to, resampler.QualityMedium)
	case "", QualitySoxrHigh:
		return resampler.ResampleMonoFloat32(in, from, to, resampler.QualityHigh)
	default:
		return nil, ErrUnknownQuality
	}
}

func (c SoxrConverter) stereo(l, r []float32, from, to float64) ([]float32, []float32, error) {
	switch c.Quality {
	case QualitySoxrQuick:
		return resampler.ResampleStereoFloat32(l, r, from, to, resampler.QualityQuick)
	case QualitySoxrMedium:
		return resampler.ResampleStereoFloat32(l, r, from, to, resampler.QualityMedium)
	case "", QualitySoxrHigh:
		return resampler.ResampleStereoFloat32(l, r, from, to, resampler.QualityHigh)
	default:
		return nil, nil, ErrUnknownQuality
	}
}
