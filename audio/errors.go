// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrTooManyChannels   = errors.New("only mono and stereo audio is supported")
	ErrUnsupportedFormat = errors.New("no decoder registered for format")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrResample          = errors.New("resampling failed")
	ErrUnknownQuality    = errors.New("unknown resampler quality")
)
