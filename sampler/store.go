// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"sync/atomic"

	"github.com/ik5/drmr/audio"
)

// Layer is one decoded waveform of a voice, selected when the mapped gain
// falls in [Min, Max). A Max of 1 is inclusive.
type Layer struct {
	Min        float32
	Max        float32
	Channels   int
	Frames     int
	SampleRate int
	// Data is interleaved and immutable once the layer is built.
	Data []float32
	// Limit is Frames*Channels; 0 marks an unplayable layer.
	Limit int
	// Path is the file the layer was decoded from, for diagnostics.
	Path string
}

// NewLayer wraps a decoded buffer. A nil buffer yields an unplayable layer.
func NewLayer(buf *audio.Buffer, min, max float32) Layer {
	l := Layer{Min: min, Max: max}
	if buf == nil {
		return l
	}
	l.Channels = buf.Channels
	l.Frames = buf.Frames
	l.SampleRate = buf.SampleRate
	l.Data = buf.Data
	l.Limit = buf.Samples()
	return l
}

func (l *Layer) contains(mapped float32) bool {
	if mapped < l.Min {
		return false
	}
	return mapped < l.Max || (l.Max >= 1 && mapped <= l.Max)
}

// selectLayer returns the first layer containing mapped. When none does it
// returns 0 and false, so a voice with layers always plays something.
func selectLayer(layers []Layer, mapped float32) (int, bool) {
	for i := range layers {
		if layers[i].contains(mapped) {
			return i, true
		}
	}
	return 0, false
}

// Voice is one playable kit slot. Everything below Layers is playback
// state owned by the real-time path.
type Voice struct {
	Name   string
	Layers []Layer

	active   bool
	layer    int
	data     []float32
	channels int
	offset   int // samples (not frames) of data already emitted
	limit    int
	velocity float32
}

// NewVoice builds an idle voice. Its cursor state is primed from the
// first layer so that Limit reports something meaningful before a trigger.
func NewVoice(name string, layers ...Layer) Voice {
	v := Voice{Name: name, Layers: layers}
	v.use(0)
	return v
}

// use points the playback cursor at layer i.
func (v *Voice) use(i int) {
	if i < 0 || i >= len(v.Layers) {
		v.layer, v.data, v.channels, v.limit = 0, nil, 0, 0
		return
	}
	l := &v.Layers[i]
	v.layer = i
	v.data = l.Data
	v.channels = l.Channels
	v.limit = min(l.Limit, len(l.Data))
}

// resolve selects the layer for mapped gain and reports whether a declared
// range matched.
func (v *Voice) resolve(mapped float32) bool {
	i, ok := selectLayer(v.Layers, mapped)
	v.use(i)
	return ok
}

// Active reports whether the voice is sounding.
func (v *Voice) Active() bool { return v.active }

// Offset is the playback cursor in samples of the current layer.
func (v *Voice) Offset() int { return v.offset }

// Limit is the sample count of the current layer; 0 when unplayable.
func (v *Voice) Limit() int { return v.limit }

// Velocity is the gain factor of the last trigger.
func (v *Voice) Velocity() float32 { return v.velocity }

// CurrentLayer is the index of the layer the cursor points at.
func (v *Voice) CurrentLayer() int { return v.layer }

// Channels is the channel count of the current layer.
func (v *Voice) Channels() int { return v.channels }

// Store is a complete voice set for one kit. Voice i answers note
// baseNote+i.
type Store struct {
	// Path identifies the kit the store was loaded from; empty for the
	// zero-voice store.
	Path   string
	Name   string
	Voices []Voice

	names    []string
	disposed atomic.Bool
}

// NewStore assembles a store; the voice names are captured for lock-free
// readers.
func NewStore(path, name string, voices []Voice) *Store {
	names := make([]string, len(voices))
	for i := range voices {
		names[i] = voices[i].Name
	}
	return &Store{Path: path, Name: name, Voices: voices, names: names}
}

// Len is the voice count.
func (s *Store) Len() int { return len(s.Voices) }

// VoiceNames is safe to call on a published store from any goroutine.
func (s *Store) VoiceNames() []string {
	return append([]string(nil), s.names...)
}

// Disposed reports whether the store has been retired by the gate.
func (s *Store) Disposed() bool { return s.disposed.Load() }

// dispose drops the sample data. Only the goroutine that swapped the store
// out of the gate calls this, after the gate lock has cycled.
func (s *Store) dispose() {
	for i := range s.Voices {
		v := &s.Voices[i]
		v.active = false
		v.data = nil
		for j := range v.Layers {
			v.Layers[j].Data = nil
		}
	}
	s.disposed.Store(true)
}
