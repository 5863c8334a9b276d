// ABOUTME: Audio sample type definitions and conversions
// ABOUTME: Clamp, stereo downmix, and 24-bit narrowing used by converter and mixer
package audio

const (
	// Output sample range. The mixer clamps symmetrically, so the most
	// negative emitted value is -32767, not -32768.
	MaxSample = 32767
	MinSample = -32767
)

// Clamp narrows a mixed accumulator to the signed 16-bit output range.
func Clamp(sum int32) int16 {
	if sum > MaxSample {
		return MaxSample
	}
	if sum < MinSample {
		return MinSample
	}
	return int16(sum)
}

// Downmix combines one stereo frame into a mono sample as (L+R)/2.
// Go integer division truncates toward zero, so Downmix(-1, -2) is -1.
func Downmix(left, right int16) int16 {
	return int16((int32(left) + int32(right)) / 2)
}

// SampleFrom24Bit sign-extends a little-endian 3-byte two's-complement
// sample to int32.
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}

// Narrow24 converts a sign-extended 24-bit value to 16 bits by an
// arithmetic shift. Truncating, not rounding: 0x7FFFFF becomes 0x7FFF
// and 0x800000 becomes 0x8000.
func Narrow24(sample int32) int16 {
	return int16(sample >> 8)
}
