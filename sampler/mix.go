// SPDX-License-Identifier: EPL-2.0

package sampler

import "github.com/ik5/drmr/utils"

// mix sums every sounding voice of s into left and right, one segment of
// the block between two events. The caller has cleared the buffers and
// holds the gate.
func (e *Engine) mix(s *Store, left, right []float32) {
	if len(left) == 0 {
		return
	}
	for i := range s.Voices {
		v := &s.Voices[i]
		if !v.active {
			continue
		}
		if v.offset >= v.limit {
			v.active = false
			continue
		}

		cl, cr := utils.PanCoefficients(e.params.Pan(i))
		g := utils.DBToGain(e.params.Gain(i)) * v.velocity
		mixVoice(v, left, right, cl*g, cr*g)

		if v.offset >= v.limit {
			v.active = false
		}
	}
}

// mixVoice accumulates v into the given frames and advances its cursor. It
// stops early when the layer runs out.
func mixVoice(v *Voice, left, right []float32, cl, cr float32) {
	data := v.data[:v.limit]
	pos := v.offset

	if v.channels == 1 {
		for f := range left {
			if pos >= len(data) {
				break
			}
			s := data[pos]
			left[f] += s * cl
			right[f] += s * cr
			pos++
		}
	} else {
		for f := range left {
			if pos+1 >= len(data) {
				pos = len(data)
				break
			}
			left[f] += data[pos] * cl
			right[f] += data[pos+1] * cr
			pos += 2
		}
	}

	v.offset = pos
}
