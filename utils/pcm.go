// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1,1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}

// FloatsToPCM16 converts src into dst as 16-bit values held in ints, the
// layout go-audio's IntBuffer expects. It converts min(len(dst), len(src))
// samples and returns that count.
func FloatsToPCM16(dst []int, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int(Float32ToInt16(src[i]))
	}
	return n
}
