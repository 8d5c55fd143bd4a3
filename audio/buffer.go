// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Buffer is a fully decoded, in-memory block of interleaved PCM.
type Buffer struct {
	SampleRate int
	Channels   int
	Frames     int
	Data       []float32
}

// Samples returns Frames * Channels, the number of float32 values in Data
// that belong to whole frames.
func (b *Buffer) Samples() int {
	return b.Frames * b.Channels
}

// ReadAll drains src into a Buffer. Trailing samples that do not form a
// whole frame are dropped. src is not closed.
func ReadAll(src Source, chunkSize int) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidDstSize
	}
	if chunkSize < channels {
		chunkSize = 4096
	}
	chunkSize -= chunkSize % channels

	out := &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   channels,
		Data:       make([]float32, 0, src.SampleRate()*channels),
	}
	buf := make([]float32, chunkSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out.Data = append(out.Data, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// Some decoders report a short read without io.EOF; treat an
			// empty read as end of stream rather than spinning.
			break
		}
	}

	out.Frames = len(out.Data) / channels
	out.Data = out.Data[:out.Frames*channels]
	return out, nil
}

// BufferSource streams a Buffer as a Source so it can be fed through
// Resampler or MonoMixer.
type BufferSource struct {
	buf *Buffer
	pos int
}

// NewBufferSource reads b from its first sample.
func NewBufferSource(b *Buffer) *BufferSource {
	return &BufferSource{buf: b}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.Channels }
func (s *BufferSource) Close() error    { return nil }

// ReadSamples copies the next samples of the buffer into dst and returns
// io.EOF with the last of them.
func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	remaining := s.buf.Samples() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	n := len(dst) - len(dst)%s.buf.Channels
	if n > remaining {
		n = remaining
	}
	copy(dst, s.buf.Data[s.pos:s.pos+n])
	s.pos += n
	if s.pos >= s.buf.Samples() {
		return n, io.EOF
	}
	return n, nil
}
