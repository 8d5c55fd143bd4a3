// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/drmr/audio"
	"github.com/mewkiz/flac"
)

var ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

type source struct {
	stream     *flac.Stream
	sampleRate int
	channels   int
	scale      float32

	// decoded samples of the current frame, interleaved, not yet returned
	pending []float32
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("closing flac stream: %w", err)
	}
	return nil
}

// fill decodes the next FLAC frame into s.pending.
func (s *source) fill() error {
	frame, err := s.stream.ParseNext()
	if err == io.EOF {
		s.eof = true
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("decoding flac frame: %w", err)
	}

	blockSize := len(frame.Subframes[0].Samples)
	need := blockSize * s.channels
	if cap(s.pending) < need {
		s.pending = make([]float32, need)
	}
	s.pending = s.pending[:need]

	for c, sub := range frame.Subframes[:s.channels] {
		for i, v := range sub.Samples {
			s.pending[i*s.channels+c] = float32(v) * s.scale
		}
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.fill(); err != nil {
				if err == io.EOF {
					break
				}
				return written, err
			}
		}
		n := copy(dst[written:], s.pending)
		written += n
		s.pending = s.pending[n:]
	}

	if written == 0 && s.eof {
		return 0, io.EOF
	}
	return written, nil
}

// Decoder decodes FLAC through github.com/mewkiz/flac. Hydrogen kits are
// commonly distributed as FLAC.
type Decoder struct{}

// Decode reads the stream header and returns a Source positioned at the
// first sample.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("opening flac stream: %w", err)
	}

	bits := int(stream.Info.BitsPerSample)
	if bits < 4 || bits > 32 {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	return &source{
		stream:     stream,
		sampleRate: int(stream.Info.SampleRate),
		channels:   int(stream.Info.NChannels),
		scale:      1 / float32(int64(1)<<(bits-1)),
	}, nil
}
