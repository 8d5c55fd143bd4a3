// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"gitlab.com/gomidi/midi/v2"
)

// FromMIDI converts a raw MIDI message into an event at the given block
// offset. Note-on with velocity 0 is reported as a note-off. Messages other
// than note on/off are ignored.
func FromMIDI(msg []byte, offset int) (Event, bool) {
	m := midi.Message(msg)

	var ch, key, vel uint8
	switch {
	case m.GetNoteStart(&ch, &key, &vel):
		return Event{Kind: EventNoteOn, Offset: offset, Channel: ch, Note: key, Velocity: vel}, true
	case m.GetNoteEnd(&ch, &key):
		return Event{Kind: EventNoteOff, Offset: offset, Channel: ch, Note: key}, true
	default:
		return Event{}, false
	}
}
