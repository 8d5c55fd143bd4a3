// SPDX-License-Identifier: EPL-2.0

package kit

import "path/filepath"

// DescriptorName is the file every kit directory must contain.
const DescriptorName = "drumkit.xml"

// Layer is one gain-selected sample of an instrument. It is chosen when
// the mapped gain falls in [Min, Max).
type Layer struct {
	Filename string
	Min      float32
	Max      float32
}

// Instrument is one playable voice of a kit. A single-file instrument has
// exactly one Layer spanning [0,1].
type Instrument struct {
	ID     int
	Name   string
	Layers []Layer
}

// Kit is a parsed drumkit.xml.
type Kit struct {
	Name        string
	Description string
	// Path is the kit directory; layer filenames are relative to it.
	Path        string
	Instruments []Instrument
}

// SamplePath resolves a layer filename against the kit directory.
func (k *Kit) SamplePath(l Layer) string {
	if filepath.IsAbs(l.Filename) {
		return l.Filename
	}
	return filepath.Join(k.Path, l.Filename)
}

// VoiceNames lists instrument names in voice order.
func (k *Kit) VoiceNames() []string {
	names := make([]string, len(k.Instruments))
	for i, inst := range k.Instruments {
		names[i] = inst.Name
	}
	return names
}

// Entry is one kit in a Catalog.
type Entry struct {
	Name        string
	Description string
	Path        string
	Voices      []string
}
