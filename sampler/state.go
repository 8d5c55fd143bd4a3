// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/drmr/kit"
)

// State is the persisted part of an engine: the current kit and the
// toggles. Fields missing from a saved document keep their zero value.
type State struct {
	KitPath        string       `json:"kitPath,omitempty"`
	IgnoreVelocity bool         `json:"ignoreVelocity"`
	IgnoreNoteOff  bool         `json:"ignoreNoteOff"`
	ZeroPosition   ZeroPosition `json:"zeroPosition"`
}

// Marshal encodes s as indented JSON.
func (s State) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalState decodes a state written by Marshal. Missing fields keep
// their zero value.
func UnmarshalState(b []byte) (State, error) {
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("parsing engine state: %w", err)
	}
	return s, nil
}

// ReadState loads a state file written by WriteState.
func ReadState(path string) (State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("reading engine state: %w", err)
	}
	return UnmarshalState(b)
}

// WriteState stores s at path, creating parent directories. The file is
// replaced atomically.
func WriteState(path string, s State) error {
	b, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("encoding engine state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".state-*")
	if err != nil {
		return fmt.Errorf("writing engine state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("writing engine state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing engine state: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// ResolveKitPath is the default path resolver: it accepts a path only if
// it is a kit directory.
func ResolveKitPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if _, err := os.Stat(filepath.Join(path, kit.DescriptorName)); err != nil {
		return "", false
	}
	return filepath.Clean(path), true
}

// SaveState captures the current kit and toggles.
func (e *Engine) SaveState() State {
	st := State{
		IgnoreVelocity: e.params.IgnoreVelocity(),
		IgnoreNoteOff:  e.params.IgnoreNoteOff(),
		ZeroPosition:   e.params.ZeroPosition(),
	}
	if p := e.CurrentKit(); p != "" {
		st.KitPath = e.mapPath(p)
	}
	return st
}

// RestoreState writes the toggles back through the connected controls and
// requests the saved kit. A kit path that no longer resolves leaves the
// current kit in place and is reported as ErrLoadFailed.
func (e *Engine) RestoreState(st State) error {
	e.params.set(PortIgnoreVelocity, boolValue(st.IgnoreVelocity))
	e.params.set(PortIgnoreNoteOff, boolValue(st.IgnoreNoteOff))
	e.params.set(PortZeroPosition, float32(st.ZeroPosition))

	if st.KitPath == "" {
		return nil
	}
	path, ok := e.resolvePath(st.KitPath)
	if !ok {
		e.log.Warn("saved kit not found", "path", st.KitPath)
		return fmt.Errorf("%w: %s does not resolve to a kit", ErrLoadFailed, st.KitPath)
	}
	return e.RequestKit(path)
}
