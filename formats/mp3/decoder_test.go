// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// chunkyReader hands out PCM bytes at most step bytes at a time, so reads
// can end in the middle of a sample.
type chunkyReader struct {
	data []byte
	step int
	err  error
}

func newChunkyReader(samples []int16, step int) *chunkyReader {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return &chunkyReader{data: data, step: step}
}

func (r *chunkyReader) SampleRate() int { return 44100 }

func (r *chunkyReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), r.step)], r.data)
	r.data = r.data[n:]
	if len(r.data) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func drain(t *testing.T, s *source, size int) []float32 {
	t.Helper()

	var out []float32
	dst := make([]float32, size)
	for range 1000 {
		n, err := s.ReadSamples(dst)
		out = append(out, dst[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("source never reached EOF")
	return nil
}

func TestSource_SplitSamples(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, -16384, 32767, -32768, 1, 2, 3}
	s := &source{dec: newChunkyReader(in, 3), sampleRate: 44100}

	got := drain(t, s, 4)
	if len(got) != len(in) {
		t.Fatalf("got %d samples, want %d", len(got), len(in))
	}
	for i, v := range in {
		if want := float32(v) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := &source{dec: newChunkyReader(nil, 2), sampleRate: 22050}
	if s.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", s.SampleRate())
	}
	if s.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", s.Channels())
	}
	if n, err := s.ReadSamples(make([]float32, 8)); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() on empty stream = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	r := newChunkyReader([]int16{1, 2}, 4)
	r.err = io.ErrUnexpectedEOF
	s := &source{dec: r, sampleRate: 44100}

	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() of empty input should fail")
	}
}
