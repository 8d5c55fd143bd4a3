// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/drmr"
	"github.com/ik5/drmr/audio"
	"github.com/ik5/drmr/kit"
)

// Loader builds a complete voice store for the kit at path, with every
// layer at the given sample rate. It runs on the worker goroutine and may
// block for as long as it needs.
type Loader interface {
	Load(path string, rate int) (*Store, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string, rate int) (*Store, error)

// Load calls f(path, rate).
func (f LoaderFunc) Load(path string, rate int) (*Store, error) { return f(path, rate) }

// FileLoader loads Hydrogen kits from disk.
//
// An unreadable or invalid drumkit.xml fails the load, and so does a
// sample with more than two channels. Any other layer whose file cannot be
// decoded is kept as an unplayable layer, and a layer that cannot be
// converted to the engine rate keeps its native-rate data.
type FileLoader struct {
	Registry  *audio.Registry
	Converter audio.Converter
	Logger    *slog.Logger
}

func (l *FileLoader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Load parses the kit at path and decodes every layer at rate.
func (l *FileLoader) Load(path string, rate int) (*Store, error) {
	if l.Registry == nil {
		return nil, fmt.Errorf("%w: no decoder registry", ErrLoadFailed)
	}

	started := time.Now()
	k, err := kit.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	voices := make([]Voice, 0, len(k.Instruments))
	for _, inst := range k.Instruments {
		layers := make([]Layer, 0, len(inst.Layers))
		for _, kl := range inst.Layers {
			layer, err := l.loadLayer(k, inst.Name, kl, rate)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
			}
			layers = append(layers, layer)
		}
		voices = append(voices, NewVoice(inst.Name, layers...))
	}

	l.logger().Info("kit loaded",
		"kit", k.Name,
		"path", path,
		"voices", len(voices),
		"duration", time.Since(started))

	return NewStore(path, k.Name, voices), nil
}

// loadLayer decodes one layer. Only a file the engine can never play, one
// with more than two channels, is returned as an error.
func (l *FileLoader) loadLayer(k *kit.Kit, voice string, kl kit.Layer, rate int) (Layer, error) {
	file := k.SamplePath(kl)

	buf, err := drmr.DecodeFile(l.Registry, l.Converter, file, rate)
	switch {
	case err == nil:
	case errors.Is(err, audio.ErrTooManyChannels):
		return Layer{}, fmt.Errorf("voice %q: %w", voice, err)
	case buf != nil && errors.Is(err, audio.ErrResample):
		l.logger().Warn("playing layer at its native rate",
			"voice", voice,
			"file", file,
			"rate", buf.SampleRate,
			"err", fmt.Errorf("%w: %w", ErrResampleFailed, err))
	default:
		l.logger().Warn("layer unplayable",
			"voice", voice,
			"file", file,
			"err", fmt.Errorf("%w: %w", ErrDecodeFailed, err))
		buf = nil
	}

	layer := NewLayer(buf, kl.Min, kl.Max)
	layer.Path = file
	return layer, nil
}
