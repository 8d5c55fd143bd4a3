// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/drmr/audio"
	"github.com/ik5/drmr/internal/audiotest"
)

func TestDecoder_Mono(t *testing.T) {
	t.Parallel()

	data := audiotest.WAVBytes(8000, 1, []int16{0, 16384, -16384, 32767})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	buf, err := audio.ReadAll(src, 64)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0}
	if buf.Frames != len(want) {
		t.Fatalf("Frames = %d, want %d", buf.Frames, len(want))
	}
	for i, w := range want {
		if math.Abs(float64(buf.Data[i]-w)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, buf.Data[i], w)
		}
	}
}

func TestDecoder_Stereo(t *testing.T) {
	t.Parallel()

	data := audiotest.WAVBytes(44100, 2, audiotest.Ramp(0, 200))

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src, 30)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Channels != 2 || buf.Frames != 100 {
		t.Fatalf("got %d channels, %d frames; want 2, 100", buf.Channels, buf.Frames)
	}
	if got, want := buf.Data[199], float32(199)/32768; got != want {
		t.Errorf("last sample = %v, want %v", got, want)
	}
}

// A plain io.Reader is buffered so go-audio can seek.
func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := audiotest.WAVBytes(22050, 1, audiotest.Ramp(-5, 10))

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("definitely not a wav file")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want %v", err, ErrNotWavFile)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(audiotest.WAVBytes(8000, 1, []int16{1, 2})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	in := make([]float32, 2*1000)
	for i := range in {
		in[i] = float32(math.Sin(float64(i)/50)) * 0.8
	}
	if err := WriteWAV16(f, 32000, 2, in); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	buf, err := audio.ReadAll(src, 512)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.SampleRate != 32000 || buf.Channels != 2 || buf.Frames != 1000 {
		t.Fatalf("got %d Hz, %d ch, %d frames; want 32000 Hz, 2 ch, 1000 frames",
			buf.SampleRate, buf.Channels, buf.Frames)
	}
	for i := range in {
		if math.Abs(float64(buf.Data[i]-in[i])) > 1e-3 {
			t.Fatalf("sample %d = %v, want %v", i, buf.Data[i], in[i])
		}
	}
}
