// Package bitcodec converts between bytes and LSB-first bit sequences.
package bitcodec

// BytesToBits expands each byte into 8 bits, least significant bit first.
func BytesToBits(data []byte) []bool {
	bits := make([]bool, 0, len(data)*8)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			bits = append(bits, (b>>i)&1 == 1)
		}
	}
	return bits
}

// BitsToBytes packs bits 8 per byte, LSB first. A trailing partial group
// still produces a byte; its unfilled high bits are zero.
func BitsToBytes(bits []bool) []byte {
	out := make([]byte, 0, PackedLen(len(bits)))
	var current byte
	pos := 0
	for _, bit := range bits {
		if bit {
			current |= 1 << pos
		}
		pos++
		if pos == 8 {
			out = append(out, current)
			current, pos = 0, 0
		}
	}
	if pos > 0 {
		out = append(out, current)
	}
	return out
}

// UnpackBits expands packed bytes but stops after count bits. Bits beyond
// count in the final byte are discarded. If packed is too short, fewer
// than count bits are returned.
func UnpackBits(packed []byte, count int) []bool {
	if count < 0 {
		count = 0
	}
	n := count
	if limit := len(packed) * 8; n > limit {
		n = limit
	}
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = (packed[i/8]>>(i%8))&1 == 1
	}
	return bits
}

// PackedLen is the number of bytes needed to hold n bits.
func PackedLen(n int) int {
	return (n + 7) / 8
}
