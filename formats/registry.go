// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder in the sub-packages into one
// audio.Registry keyed by file extension.
package formats

import (
	"github.com/ik5/drmr/audio"
	"github.com/ik5/drmr/formats/aiff"
	"github.com/ik5/drmr/formats/flac"
	"github.com/ik5/drmr/formats/mp3"
	"github.com/ik5/drmr/formats/vorbis"
	"github.com/ik5/drmr/formats/wav"
)

// NewRegistry returns a registry with every supported sample format.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}
