// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding and sample-rate plumbing used to turn
// kit sample files into in-memory voice data.
//
// The building blocks are:
//   - Source, a streaming interleaved float32 reader implemented by every
//     decoder in the formats packages
//   - Registry, which maps file extensions to decoders
//   - Buffer and ReadAll, a fully decoded sample held in memory
//   - Converter, with SoxrConverter (polyphase FIR) and CubicConverter
//     (streaming Catmull-Rom Resampler) implementations
//   - MonoMixer, which folds a Source down to one channel
//
// # Loading a sample
//
//	dec, ok := registry.Lookup("kick.wav")
//	src, err := dec.Decode(file)
//	buf, err := audio.ReadAll(src, 4096)
//	conv, _ := audio.NewConverter(audio.QualitySoxrHigh)
//	buf, err = conv.Convert(buf, 48000)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by frame. A stereo
// Buffer with Frames == 3 holds L R L R L R.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Converters wrap
// failures in ErrResample and never modify their input, so a caller can
// fall back to the unconverted Buffer.
package audio
