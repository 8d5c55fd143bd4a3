// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func near(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func TestDBToGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		db   float32
		want float32
	}{
		{"unity", 0, 1},
		{"minus 6 dB", -6, 0.501187},
		{"minus 20 dB", -20, 0.1},
		{"plus 6 dB", 6, 1.995262},
		{"floor is silence", GainMin, 0},
		{"below floor is silence", -90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DBToGain(tt.db); !near(got, tt.want, 1e-5) {
				t.Errorf("DBToGain(%v) = %v, want %v", tt.db, got, tt.want)
			}
		})
	}
}

func TestMappedGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		db   float32
		want float32
	}{
		{GainMin, 0},
		{-80, 0},
		{-42, 0.3},
		{-30, 0.5},
		{-18, 0.7},
		{0, 1},
		{GainMax, 1},
	}

	for _, tt := range tests {
		if got := MappedGain(tt.db); !near(got, tt.want, 1e-6) {
			t.Errorf("MappedGain(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}
}

func TestPanCoefficients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		pan         float32
		left, right float32
	}{
		{"centre", 0, 1, 1},
		{"hard left", -1, math.Sqrt2, 0},
		{"hard right", 1, 0, math.Sqrt2},
		{"clamped left", -3, math.Sqrt2, 0},
		{"clamped right", 2, 0, math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, r := PanCoefficients(tt.pan)
			if !near(l, tt.left, 1e-5) || !near(r, tt.right, 1e-5) {
				t.Errorf("PanCoefficients(%v) = (%v, %v), want (%v, %v)", tt.pan, l, r, tt.left, tt.right)
			}
		})
	}
}

func TestPanCoefficients_Mirror(t *testing.T) {
	t.Parallel()

	for _, p := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		l1, r1 := PanCoefficients(-p)
		l2, r2 := PanCoefficients(p)
		if !near(l1, r2, 1e-6) || !near(r1, l2, 1e-6) {
			t.Errorf("pan %v: (%v,%v) is not the mirror of (%v,%v)", p, l1, r1, l2, r2)
		}
		if l2 >= r2 {
			t.Errorf("pan %v: left %v should be below right %v", p, l2, r2)
		}
	}
}
