// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/drmr/utils"
)

// Resampler streams src at a new sample rate using Catmull-Rom cubic
// interpolation over a sliding window of four frames. Channel count is
// preserved. A one-pole low-pass is applied to the input when
// downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float32
	filled [4]bool
	primed bool
	pos    float64 // fractional position between window[1] and window[2]

	frame []float32
	eof   bool

	lowpass bool
	seeded  bool
	alpha   float32
	state   []float32
}

// NewResampler streams src at dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, channels),
		lowpass:  step > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame pulls one frame from the source into r.frame.
func (r *Resampler) readFrame() (bool, error) {
	if r.eof {
		return false, io.EOF
	}
	n, err := r.src.ReadSamples(r.frame)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("reading source frame: %w", err)
	}
	if n < r.channels {
		if r.eof {
			return false, io.EOF
		}
		return false, nil
	}
	if r.lowpass {
		if !r.seeded {
			// seed the filter with the first frame to avoid a fade-in
			copy(r.state, r.frame)
			r.seeded = true
		}
		for c := range r.channels {
			r.frame[c] = r.alpha*r.frame[c] + (1-r.alpha)*r.state[c]
			r.state[c] = r.frame[c]
		}
	}
	return true, nil
}

// prime fills window[1:] with the first source frames. window[0] stays
// empty so the first output frame lands exactly on the first input frame;
// a short source repeats its last frame.
func (r *Resampler) prime() error {
	for i := 1; i < len(r.window); i++ {
		ok, err := r.readFrame()
		if err != nil && err != io.EOF {
			return err
		}
		if !ok {
			if i == 1 {
				return io.EOF
			}
			for j := i; j < len(r.window); j++ {
				copy(r.window[j], r.window[i-1])
				r.filled[j] = true
			}
			break
		}
		copy(r.window[i], r.frame)
		r.filled[i] = true
	}
	r.primed = true
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.filled[:], r.filled[1:])

	ok, err := r.readFrame()
	if err != nil && err != io.EOF {
		return err
	}
	if ok {
		copy(r.window[3], r.frame)
		r.filled[3] = true
		return nil
	}
	r.filled[3] = false
	if !r.filled[2] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if !r.filled[1] || !r.filled[2] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			y0 := r.window[1][c]
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.filled[3] {
				y3 = r.window[3][c]
			}
			dst[base+c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, x)
		}
		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
