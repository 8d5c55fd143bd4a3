// SPDX-License-Identifier: EPL-2.0

package kit

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type xmlLayer struct {
	Filename string   `xml:"filename"`
	Min      *float32 `xml:"min"`
	Max      *float32 `xml:"max"`
}

type xmlInstrument struct {
	ID         string     `xml:"id"`
	Name       string     `xml:"name"`
	Filename   string     `xml:"filename"`
	Layers     []xmlLayer `xml:"layer"`
	Components []struct {
		Layers []xmlLayer `xml:"layer"`
	} `xml:"instrumentComponent"`
}

type xmlKit struct {
	XMLName     xml.Name        `xml:"drumkit_info"`
	Name        string          `xml:"name"`
	Info        string          `xml:"info"`
	Instruments []xmlInstrument `xml:"instrumentList>instrument"`
}

// Parse reads a Hydrogen drumkit.xml. Instruments are returned in file
// order; those that name no sample at all are dropped. Path is left empty.
func Parse(r io.Reader) (*Kit, error) {
	var doc xmlKit
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	k := &Kit{
		Name:        strings.TrimSpace(doc.Name),
		Description: strings.TrimSpace(doc.Info),
		Instruments: make([]Instrument, 0, len(doc.Instruments)),
	}

	for _, xi := range doc.Instruments {
		inst := Instrument{Name: strings.TrimSpace(xi.Name)}
		if id, err := strconv.Atoi(strings.TrimSpace(xi.ID)); err == nil {
			inst.ID = id
		}

		layers := xi.Layers
		for _, c := range xi.Components {
			layers = append(layers, c.Layers...)
		}

		for _, xl := range layers {
			name := strings.TrimSpace(xl.Filename)
			if name == "" {
				continue
			}
			l := Layer{Filename: name, Min: 0, Max: 1}
			if xl.Min != nil {
				l.Min = *xl.Min
			}
			if xl.Max != nil {
				l.Max = *xl.Max
			}
			inst.Layers = append(inst.Layers, l)
		}

		if len(inst.Layers) == 0 {
			name := strings.TrimSpace(xi.Filename)
			if name == "" {
				continue
			}
			inst.Layers = []Layer{{Filename: name, Min: 0, Max: 1}}
		}

		k.Instruments = append(k.Instruments, inst)
	}

	return k, nil
}

// ParseFile reads dir/drumkit.xml and sets Path to dir.
func ParseFile(dir string) (*Kit, error) {
	f, err := os.Open(filepath.Join(dir, DescriptorName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNoDescriptor)
		}
		return nil, fmt.Errorf("opening kit descriptor: %w", err)
	}
	defer f.Close()

	k, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	k.Path = dir
	if k.Name == "" {
		k.Name = filepath.Base(dir)
	}
	return k, nil
}
