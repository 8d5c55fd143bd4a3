// SPDX-License-Identifier: EPL-2.0

package sampler

import "fmt"

// EventKind is the type of an input event.
type EventKind uint8

const (
	EventNoteOn EventKind = iota + 1
	EventNoteOff
	// EventKitChange asks the loader to install the kit at Path.
	EventKitChange
	// EventGetState asks the engine to report its current kit.
	EventGetState
)

func (k EventKind) String() string {
	switch k {
	case EventNoteOn:
		return "note-on"
	case EventNoteOff:
		return "note-off"
	case EventKitChange:
		return "kit-change"
	case EventGetState:
		return "get-state"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is one timed input to a block. Offset is the frame within the
// block at which it takes effect. Events are plain values so that a block
// can consume them without allocating.
type Event struct {
	Kind     EventKind
	Offset   int
	Channel  uint8
	Note     uint8
	Velocity uint8
	Path     string
}

// NoteOn builds a note-on event.
func NoteOn(offset int, note, velocity uint8) Event {
	return Event{Kind: EventNoteOn, Offset: offset, Note: note, Velocity: velocity}
}

// NoteOff builds a note-off event.
func NoteOff(offset int, note uint8) Event {
	return Event{Kind: EventNoteOff, Offset: offset, Note: note}
}

// KitChange builds a kit change request.
func KitChange(path string) Event {
	return Event{Kind: EventKitChange, Path: path}
}

func (e Event) String() string {
	switch e.Kind {
	case EventNoteOn:
		return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d, offset:%d}", e.Channel, e.Note, e.Velocity, e.Offset)
	case EventNoteOff:
		return fmt.Sprintf("NoteOff{ch:%d, note:%d, offset:%d}", e.Channel, e.Note, e.Offset)
	case EventKitChange:
		return fmt.Sprintf("KitChange{path:%q}", e.Path)
	default:
		return e.Kind.String()
	}
}
