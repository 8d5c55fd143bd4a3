// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"testing"
)

func TestParsePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		voice   int
		steps   string
		wantErr bool
	}{
		{"0:x...x...", 0, "x...x...", false},
		{"3:X.o.|g-x.", 3, "X.o.g-x.", false},
		{" 2 :x", 2, "x", false},
		{"x...", 0, "", true},
		{"-1:x", 0, "", true},
		{"a:x", 0, "", true},
		{"1:", 0, "", true},
		{"1:x.y.", 0, "", true},
	}

	for _, tt := range tests {
		got, err := parsePattern(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errBadPattern) {
				t.Errorf("parsePattern(%q) error = %v, want errBadPattern", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePattern(%q) error = %v", tt.in, err)
			continue
		}
		if got.voice != tt.voice || got.steps != tt.steps {
			t.Errorf("parsePattern(%q) = %+v, want {%d %q}", tt.in, got, tt.voice, tt.steps)
		}
	}
}

func TestPatterns_Schedule(t *testing.T) {
	t.Parallel()

	var p patterns
	for _, s := range []string{"0:X...", "1:..x......g"} {
		if err := p.Set(s); err != nil {
			t.Fatal(err)
		}
	}

	if got := p.length(); got != 10 {
		t.Fatalf("length() = %d, want 10", got)
	}

	want := []hit{
		{0, 0, accent},
		{2, 1, normal},
		{4, 0, accent},
		{8, 0, accent},
		{9, 1, ghost},
		{12, 0, accent},
		{12, 1, normal},
		{16, 0, accent},
		{19, 1, ghost},
	}
	got := p.schedule(2)
	if len(got) != len(want) {
		t.Fatalf("schedule(2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hit %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFramesPerStep(t *testing.T) {
	t.Parallel()

	if got := framesPerStep(48000, 120); got != 6000 {
		t.Errorf("framesPerStep(48000, 120) = %v, want 6000", got)
	}
}
