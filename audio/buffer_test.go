// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/drmr/internal/audiotest"
)

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		channels  int
		frames    int
		chunkSize int
	}{
		{"mono", 1, 1000, 256},
		{"stereo", 2, 777, 256},
		{"odd chunk", 2, 500, 333},
		{"tiny chunk", 2, 50, 1},
		{"empty", 1, 0, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewRampSource(22050, tt.channels, tt.frames)
			buf, err := ReadAll(src, tt.chunkSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if buf.SampleRate != 22050 || buf.Channels != tt.channels || buf.Frames != tt.frames {
				t.Fatalf("ReadAll() = {rate:%d ch:%d frames:%d}, want {22050 %d %d}",
					buf.SampleRate, buf.Channels, buf.Frames, tt.channels, tt.frames)
			}
			if len(buf.Data) != buf.Samples() {
				t.Errorf("len(Data) = %d, want %d", len(buf.Data), buf.Samples())
			}
			for i, v := range buf.Data {
				if want := float32(i) / 1000; v != want {
					t.Fatalf("Data[%d] = %v, want %v", i, v, want)
				}
			}
		})
	}
}

type errSource struct {
	*audiotest.MockSource
}

var errBroken = errors.New("broken stream")

func (errSource) ReadSamples([]float32) (int, error) { return 0, errBroken }

func TestReadAll_Error(t *testing.T) {
	t.Parallel()

	src := errSource{audiotest.NewSilentSource(8000, 1, 10)}
	if _, err := ReadAll(src, 64); !errors.Is(err, errBroken) {
		t.Errorf("ReadAll() error = %v, want %v", err, errBroken)
	}
}

func TestBufferSource(t *testing.T) {
	t.Parallel()

	b := &Buffer{SampleRate: 8000, Channels: 2, Frames: 5, Data: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}
	src := NewBufferSource(b)

	if src.SampleRate() != 8000 || src.Channels() != 2 {
		t.Fatalf("metadata = %d Hz %d ch", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 5) // rounds down to whole frames
	n, err := src.ReadSamples(dst)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v, want 4, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 4 || err != nil || dst[0] != 5 {
		t.Fatalf("ReadSamples() = %d, %v (dst[0]=%v), want 4, nil, 5", n, err, dst[0])
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != io.EOF || dst[1] != 10 {
		t.Fatalf("final ReadSamples() = %d, %v, want 2, EOF", n, err)
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() past end = %d, %v, want 0, EOF", n, err)
	}
}

func TestBufferSource_RoundTrip(t *testing.T) {
	t.Parallel()

	orig, err := ReadAll(audiotest.NewSineSource(16000, 2, 1234, 440), 512)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ReadAll(NewBufferSource(orig), 100)
	if err != nil {
		t.Fatal(err)
	}

	if again.Frames != orig.Frames {
		t.Fatalf("Frames = %d, want %d", again.Frames, orig.Frames)
	}
	for i := range orig.Data {
		if again.Data[i] != orig.Data[i] {
			t.Fatalf("Data[%d] = %v, want %v", i, again.Data[i], orig.Data[i])
		}
	}
}
