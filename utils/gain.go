// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// GainMin is the bottom of the gain range in decibels. Anything at or
// below it is silence.
const GainMin float32 = -60.0

// GainMax is the top of the gain range in decibels.
const GainMax float32 = 6.0

// Pan law constants: coef(p) = p*(PanA*p + PanB) passes through
// (0,0), (0.5,1) and (1,sqrt 2), so the centre is unity on both sides
// and L^2+R^2 == 2 at the centre and both extremes.
const (
	PanA = float32(2*math.Sqrt2 - 4)
	PanB = float32(4 - math.Sqrt2)
)

// DBToGain converts decibels to a linear factor; GainMin and below map to 0.
func DBToGain(db float32) float32 {
	if db <= GainMin {
		return 0
	}
	return float32(math.Pow(10, float64(db)/20))
}

// MappedGain maps a decibel value onto [0,1] for layer selection:
// GainMin -> 0, 0 dB -> 1, clamped.
func MappedGain(db float32) float32 {
	m := 1 - db/GainMin
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// PanCoefficients returns the left and right factors for pan in [-1,1].
// Out of range values are clamped.
func PanCoefficients(pan float32) (left, right float32) {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	r := (pan + 1) / 2
	l := 1 - r
	return l * (PanA*l + PanB), r * (PanA*r + PanB)
}
