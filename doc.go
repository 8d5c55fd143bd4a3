// SPDX-License-Identifier: EPL-2.0

// Package drmr is a real-time drum sampler.
//
// A kit is a directory holding a Hydrogen drumkit.xml and its sample files.
// Each instrument in the kit becomes a voice; an instrument may be split
// into several layers selected by gain. The sampler package plays voices
// in response to note events and mixes them into a stereo block, while a
// background worker loads replacement kits and publishes them without
// blocking the audio path.
//
// # Packages
//
//   - sampler: the engine (voice store, kit loader, publish gate, trigger
//     dispatch, mixing, parameters, persisted state)
//   - kit: Hydrogen drumkit.xml parsing and kit directory scanning
//   - audio: Source/Decoder interfaces, decoded Buffer, rate Converters
//   - formats: WAV, AIFF, FLAC, MP3 and Ogg Vorbis decoders
//   - config: JSON configuration for the drmr command
//
// This package holds the decode/resample step shared by the kit loader:
//
//	reg := formats.NewRegistry()
//	conv, _ := audio.NewConverter(audio.QualitySoxrHigh)
//	buf, err := drmr.DecodeFile(reg, conv, "kick.flac", 48000)
//
// # Real-time contract
//
// sampler.Engine.Run never performs I/O and does not allocate; it holds
// the publish gate for exactly one block. Kit loading happens on its own
// goroutine and only takes the gate to swap the voice store.
package drmr
