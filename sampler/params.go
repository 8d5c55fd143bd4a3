// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"math"
	"sync/atomic"
)

// MaxVoices is the number of voices with their own gain and pan ports.
// Voices past it play at unity gain, centred.
const MaxVoices = 32

// DefaultBaseNote is General MIDI's bass drum, so voice 0 answers a kick.
const DefaultBaseNote = 36

// Control is one host-owned parameter value. Reads and writes are single
// atomic words, so a block sees either the old or the new value, never a
// torn one.
type Control struct {
	bits atomic.Uint32
}

// NewControl returns a control holding v.
func NewControl(v float32) *Control {
	c := &Control{}
	c.Store(v)
	return c
}

// Load returns the current value.
func (c *Control) Load() float32 { return math.Float32frombits(c.bits.Load()) }

// Store sets the value; the next block sees it.
func (c *Control) Store(v float32) { c.bits.Store(math.Float32bits(v)) }

// Port names a parameter slot.
type Port int

const (
	PortBaseNote Port = iota
	PortIgnoreVelocity
	PortIgnoreNoteOff
	PortZeroPosition
	PortKitIndex
	portGain0
	portPan0 = portGain0 + MaxVoices
	NumPorts = portPan0 + MaxVoices
)

// GainPort is the decibel gain port of voice i.
func GainPort(i int) Port { return portGain0 + Port(i) }

// PanPort is the pan (-1..1) port of voice i.
func PanPort(i int) Port { return portPan0 + Port(i) }

func (p Port) String() string {
	switch {
	case p == PortBaseNote:
		return "base-note"
	case p == PortIgnoreVelocity:
		return "ignore-velocity"
	case p == PortIgnoreNoteOff:
		return "ignore-note-off"
	case p == PortZeroPosition:
		return "zero-position"
	case p == PortKitIndex:
		return "kit-index"
	case p >= portGain0 && p < portPan0:
		return fmt.Sprintf("gain-%d", p-portGain0)
	case p >= portPan0 && p < NumPorts:
		return fmt.Sprintf("pan-%d", p-portPan0)
	default:
		return fmt.Sprintf("port-%d", int(p))
	}
}

// ZeroPosition is where the UI draws sample 0 in its grid. The engine only
// persists it.
type ZeroPosition int

const (
	ZeroTopLeft ZeroPosition = iota
	ZeroBottomLeft
	ZeroTopRight
	ZeroBottomRight
)

var zeroPositionNames = [...]string{"top-left", "bottom-left", "top-right", "bottom-right"}

func (z ZeroPosition) String() string {
	if z < 0 || int(z) >= len(zeroPositionNames) {
		return fmt.Sprintf("zero-position(%d)", int(z))
	}
	return zeroPositionNames[z]
}

func (z ZeroPosition) MarshalText() ([]byte, error) {
	if z < 0 || int(z) >= len(zeroPositionNames) {
		return nil, fmt.Errorf("%w: zero position %d", ErrOutOfRange, int(z))
	}
	return []byte(zeroPositionNames[z]), nil
}

func (z *ZeroPosition) UnmarshalText(b []byte) error {
	for i, name := range zeroPositionNames {
		if name == string(b) {
			*z = ZeroPosition(i)
			return nil
		}
	}
	return fmt.Errorf("%w: zero position %q", ErrOutOfRange, b)
}

// Params is the parameter surface: a table of optional host controls.
// An unconnected port reads as its default.
type Params struct {
	ports [NumPorts]atomic.Pointer[Control]
}

// Connect attaches c to port; a nil c disconnects it.
func (p *Params) Connect(port Port, c *Control) error {
	if port < 0 || port >= NumPorts {
		return fmt.Errorf("%w: port %d", ErrOutOfRange, int(port))
	}
	p.ports[port].Store(c)
	return nil
}

// Control returns the control attached to port, or nil.
func (p *Params) Control(port Port) *Control {
	if port < 0 || port >= NumPorts {
		return nil
	}
	return p.ports[port].Load()
}

func (p *Params) load(port Port, def float32) float32 {
	if c := p.ports[port].Load(); c != nil {
		return c.Load()
	}
	return def
}

// set writes back through a connected control; unconnected ports are left alone.
func (p *Params) set(port Port, v float32) bool {
	if c := p.ports[port].Load(); c != nil {
		c.Store(v)
		return true
	}
	return false
}

// Gain is voice i's gain in decibels; 0 when unset.
func (p *Params) Gain(i int) float32 {
	if i < 0 || i >= MaxVoices {
		return 0
	}
	return p.load(GainPort(i), 0)
}

// Pan is voice i's pan in [-1, 1]; 0 when unset.
func (p *Params) Pan(i int) float32 {
	if i < 0 || i >= MaxVoices {
		return 0
	}
	return p.load(PanPort(i), 0)
}

// BaseNote is the note that triggers voice 0.
func (p *Params) BaseNote() int {
	return int(p.load(PortBaseNote, DefaultBaseNote))
}

// IgnoreVelocity reports whether every hit plays at full velocity.
func (p *Params) IgnoreVelocity() bool {
	return p.load(PortIgnoreVelocity, 0) != 0
}

// IgnoreNoteOff reports whether voices always play to their end.
func (p *Params) IgnoreNoteOff() bool {
	return p.load(PortIgnoreNoteOff, 0) != 0
}

// ZeroPosition is the sample-zero alignment kept for hosts that draw it.
func (p *Params) ZeroPosition() ZeroPosition {
	return ZeroPosition(p.load(PortZeroPosition, 0))
}

// KitIndex reports the requested catalog index when the port is connected.
func (p *Params) KitIndex() (int, bool) {
	c := p.ports[PortKitIndex].Load()
	if c == nil {
		return 0, false
	}
	return int(math.Floor(float64(c.Load()))), true
}

func boolValue(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
