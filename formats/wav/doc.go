// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files on top of github.com/go-audio/wav.
//
// Decoding accepts integer PCM at 8, 16, 24 or 32 bits, mono or stereo or
// more (the kit loader rejects more than two channels itself):
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Samples are normalised to float32 in [-1, 1].
//
// WriteWAV16 writes interleaved float32 samples as 16-bit PCM, which is
// what the offline renderer produces:
//
//	f, _ := os.Create("out.wav")
//	err := wav.WriteWAV16(f, 48000, 2, samples)
package wav
