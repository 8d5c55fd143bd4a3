// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/drmr/utils"
)

// WriteWAV16 encodes interleaved float samples as 16-bit PCM. w must be
// seekable because the encoder patches the chunk sizes on Close.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if channels < 1 {
		return ErrInvalidChannels
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	const chunkSize = 8192
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, min(len(samples), chunkSize)),
		SourceBitDepth: 16,
	}

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		buf.Data = buf.Data[:end-i]
		utils.FloatsToPCM16(buf.Data, samples[i:end])
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing WAV frames: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalising WAV: %w", err)
	}
	return nil
}
