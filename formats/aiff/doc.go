// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF sample files through github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 and 32 bits is supported, at any sample
// rate and channel count. Input that is not an io.ReadSeeker is buffered
// in memory first, since go-audio needs to seek between chunks.
//
//	src, err := aiff.Decoder{}.Decode(file)
package aiff
