// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 sample files through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every Source from this package
// reports two channels; mono files come out with both channels equal.
//
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
