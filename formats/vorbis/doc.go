// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis sample files through
// github.com/jfreymuth/oggvorbis.
//
//	src, err := vorbis.Decoder{}.Decode(file)
package vorbis
