// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errBadPattern = errors.New("bad pattern")

// Step velocities.
const (
	accent = 127
	normal = 100
	soft   = 64
	ghost  = 32
)

// hit is one scheduled trigger.
type hit struct {
	step     int
	voice    int
	velocity uint8
}

// pattern is a step sequence for one voice, one character per sixteenth:
// X accent, x normal, o soft, g ghost, '.' or '-' rest. "3:X..o..g." plays
// voice 3 on steps 0, 3 and 6. '|' may separate beats and is ignored.
type pattern struct {
	voice int
	steps string
}

func parsePattern(s string) (pattern, error) {
	idx, steps, ok := strings.Cut(s, ":")
	if !ok {
		return pattern{}, fmt.Errorf("%w %q: want voice:steps", errBadPattern, s)
	}
	voice, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil || voice < 0 {
		return pattern{}, fmt.Errorf("%w %q: voice must be a non-negative number", errBadPattern, s)
	}
	steps = strings.ReplaceAll(steps, "|", "")
	if steps == "" {
		return pattern{}, fmt.Errorf("%w %q: no steps", errBadPattern, s)
	}
	for _, c := range steps {
		if !strings.ContainsRune(".-xXog", c) {
			return pattern{}, fmt.Errorf("%w %q: unknown step %q", errBadPattern, s, c)
		}
	}
	return pattern{voice: voice, steps: steps}, nil
}

func velocityOf(c byte) (uint8, bool) {
	switch c {
	case 'X':
		return accent, true
	case 'x':
		return normal, true
	case 'o':
		return soft, true
	case 'g':
		return ghost, true
	default:
		return 0, false
	}
}

// patterns collects repeated -p flags.
type patterns []pattern

func (p *patterns) String() string {
	parts := make([]string, len(*p))
	for i, pt := range *p {
		parts[i] = fmt.Sprintf("%d:%s", pt.voice, pt.steps)
	}
	return strings.Join(parts, " ")
}

func (p *patterns) Set(s string) error {
	pt, err := parsePattern(s)
	if err != nil {
		return err
	}
	*p = append(*p, pt)
	return nil
}

// length is the loop length in steps: the longest pattern.
func (p patterns) length() int {
	n := 0
	for _, pt := range p {
		n = max(n, len(pt.steps))
	}
	return n
}

// schedule lays the patterns out over loops repetitions, sorted by step.
// Shorter patterns repeat within the loop.
func (p patterns) schedule(loops int) []hit {
	n := p.length()
	var hits []hit
	for step := range n * loops {
		for _, pt := range p {
			if v, ok := velocityOf(pt.steps[step%len(pt.steps)]); ok {
				hits = append(hits, hit{step: step, voice: pt.voice, velocity: v})
			}
		}
	}
	return hits
}

// framesPerStep is the length of a sixteenth note.
func framesPerStep(rate int, bpm float64) float64 {
	return float64(rate) * 60 / bpm / 4
}
