// Package murmur3 implements the 32-bit Murmur3 variant used by Spark's
// Murmur3Hash expression.
//
// This is not the reference Murmur3 from smhasher: Spark mixes any 1-3
// trailing bytes one at a time, sign-extending each byte to a full 32-bit
// word, instead of accumulating them into a single partial word. Hash codes
// therefore match Spark exactly and deliberately differ from generic
// murmur3 libraries.
package murmur3

import "math/bits"

const (
	c1 = 0xcc9e2d51
	c2 = 0x1b873593
)

func mixK1(k1 uint32) uint32 {
	k1 *= c1
	k1 = bits.RotateLeft32(k1, 15)
	k1 *= c2
	return k1
}

func mixH1(h1, k1 uint32) uint32 {
	h1 ^= k1
	h1 = bits.RotateLeft32(h1, 13)
	return h1*5 + 0xe6546b64
}

func fmix(h1, length uint32) uint32 {
	h1 ^= length
	h1 ^= h1 >> 16
	h1 *= 0x85ebca6b
	h1 ^= h1 >> 13
	h1 *= 0xc2b2ae35
	h1 ^= h1 >> 16
	return h1
}

// Hash32 hashes data with the given seed.
//
// The input is consumed as 4-byte little-endian words; each trailing byte is
// sign-extended to 32 bits and mixed as its own word. Words are assembled
// byte by byte, so results are identical on big-endian hosts.
func Hash32[T ~string | ~[]byte](data T, seed uint32) uint32 {
	h1 := seed
	i := 0
	for ; i+4 <= len(data); i += 4 {
		w := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
		h1 = mixH1(h1, mixK1(w))
	}
	for ; i < len(data); i++ {
		h1 = mixH1(h1, mixK1(uint32(int32(int8(data[i])))))
	}
	return fmix(h1, uint32(len(data)))
}

// HashInt32 hashes a single 32-bit value. Equivalent to Hash32 over the
// value's little-endian bytes, without materializing them.
func HashInt32(v int32, seed uint32) uint32 {
	return fmix(mixH1(seed, mixK1(uint32(v))), 4)
}

// HashInt64 hashes a single 64-bit value, low word first. Equivalent to
// Hash32 over the value's little-endian bytes.
func HashInt64(v int64, seed uint32) uint32 {
	h1 := mixH1(seed, mixK1(uint32(uint64(v))))
	h1 = mixH1(h1, mixK1(uint32(uint64(v)>>32)))
	return fmix(h1, 8)
}
