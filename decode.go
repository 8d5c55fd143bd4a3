// SPDX-License-Identifier: EPL-2.0

package drmr

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/drmr/audio"
)

// DecodeFile decodes the sample at path and converts it to targetRate.
//
// Files with more than two channels are rejected with
// audio.ErrTooManyChannels. If the conversion fails the decoded buffer is
// still returned, at its native rate, together with an error wrapping
// audio.ErrResample; callers may play it rather than drop it.
//
// conv may be nil, in which case no conversion is attempted.
func DecodeFile(reg *audio.Registry, conv audio.Converter, path string, targetRate int) (*audio.Buffer, error) {
	dec, ok := reg.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	if src.Channels() > 2 {
		return nil, fmt.Errorf("%s has %d channels: %w", path, src.Channels(), audio.ErrTooManyChannels)
	}

	buf, err := audio.ReadAll(src, 4096)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if conv == nil || targetRate <= 0 || buf.SampleRate == targetRate {
		return buf, nil
	}

	converted, err := conv.Convert(buf, targetRate)
	if err != nil {
		if !errors.Is(err, audio.ErrResample) {
			err = fmt.Errorf("%w: %w", audio.ErrResample, err)
		}
		return buf, fmt.Errorf("converting %s from %d Hz to %d Hz: %w", path, buf.SampleRate, targetRate, err)
	}
	return converted, nil
}
