// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"context"
	"log/slog"

	"github.com/ik5/drmr/utils"
)

// dispatch applies one event to the store held by the current block. The
// caller has already mixed every frame before the event's offset, so the
// event takes effect at that frame.
func (e *Engine) dispatch(s *Store, ev Event) {
	switch ev.Kind {
	case EventNoteOn:
		e.noteOn(s, ev)
	case EventNoteOff:
		e.noteOff(s, ev)
	case EventKitChange:
		e.postFromBlock(request{path: ev.Path})
	case EventGetState:
		e.notify.send(Notification{Kind: NotifyStateReport, Path: s.Path, Event: ev})
	}
}

// clampOffset keeps an event offset inside a block of frames.
func clampOffset(off, frames int) int {
	if frames <= 0 || off < 0 {
		return 0
	}
	return min(off, frames-1)
}

// voiceFor maps a note to a voice of s, or reports that it is out of range.
func (e *Engine) voiceFor(s *Store, note uint8) (int, *Voice) {
	i := int(note) - e.params.BaseNote()
	if i < 0 || i >= s.Len() {
		return i, nil
	}
	return i, &s.Voices[i]
}

func (e *Engine) noteOn(s *Store, ev Event) {
	i, v := e.voiceFor(s, ev.Note)
	if v == nil {
		if e.debugging() {
			e.log.Debug("note outside kit", "note", ev.Note, "voice", i, "voices", s.Len())
		}
		return
	}

	if !v.resolve(utils.MappedGain(e.params.Gain(i))) && len(v.Layers) > 0 && e.debugging() {
		e.log.Debug("no layer for gain, using first", "voice", i, "gain", e.params.Gain(i))
	}

	v.offset = 0
	v.active = true
	if e.params.IgnoreVelocity() {
		v.velocity = 1
	} else {
		v.velocity = float32(ev.Velocity) / 127
	}

	e.notify.send(Notification{Kind: NotifyVoiceFired, Path: s.Path, Voice: i, Event: ev})
}

// noteOff silences a sounding voice. A voice that is not sounding is left
// untouched.
func (e *Engine) noteOff(s *Store, ev Event) {
	if e.params.IgnoreNoteOff() {
		return
	}
	i, v := e.voiceFor(s, ev.Note)
	if v == nil || !v.active {
		return
	}

	// The layer may move if the gain changed since the trigger. The cursor
	// stays on a frame boundary of the new layer.
	v.resolve(utils.MappedGain(e.params.Gain(i)))
	v.offset = min(v.offset, v.limit)
	if v.channels > 1 {
		v.offset -= v.offset % v.channels
	}
	v.active = false
}

// debugging guards log calls on the block path, whose arguments would
// otherwise allocate.
func (e *Engine) debugging() bool {
	return e.log.Enabled(context.Background(), slog.LevelDebug)
}
