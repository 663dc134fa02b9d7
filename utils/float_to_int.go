// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func FloatToInt16(x float64) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1 from overflowing
	return int16(x * 32767.0)
}

// IntToFloat scales a signed PCM sample of the given bit depth to [-1, 1).
func IntToFloat(v int, bitDepth int) float64 {
	return float64(v) / float64(int64(1)<<(bitDepth-1))
}
