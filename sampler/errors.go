// SPDX-License-Identifier: EPL-2.0

package sampler

import "errors"

var (
	// ErrConfig means no usable kit source exists; the engine cannot start.
	ErrConfig = errors.New("no usable kit source")

	// ErrLoadFailed means a kit descriptor was missing or unparseable. The
	// previously installed kit stays current.
	ErrLoadFailed = errors.New("kit load failed")

	// ErrDecodeFailed marks a single layer whose file could not be decoded.
	// The layer is unplayable; the rest of the kit loads.
	ErrDecodeFailed = errors.New("sample decode failed")

	// ErrResampleFailed marks a layer kept at its native rate because the
	// converter failed.
	ErrResampleFailed = errors.New("sample rate conversion failed")

	// ErrOutOfRange reports a voice, note or port index outside its bounds.
	ErrOutOfRange = errors.New("index out of range")

	// ErrQueueFull means the external event queue had no room; the event
	// was dropped.
	ErrQueueFull = errors.New("event queue full")

	// ErrClosed is returned by operations on a closed Engine.
	ErrClosed = errors.New("engine closed")
)
