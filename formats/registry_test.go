// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	want := []string{"aif", "aiff", "flac", "mp3", "oga", "ogg", "wav"}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	for _, path := range []string{"kick.WAV", "a/b/snare.flac", "hat.Ogg", "tom.aif"} {
		if _, ok := reg.Lookup(path); !ok {
			t.Errorf("Lookup(%q) found no decoder", path)
		}
	}
	if _, ok := reg.Lookup("notes.txt"); ok {
		t.Error("Lookup(notes.txt) should find nothing")
	}
}
