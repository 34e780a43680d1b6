package sparkhash

// Pmod maps a finished hash code to a partition index in [0, n).
//
// The hash is reinterpreted as a signed 32-bit value and reduced with a
// truncating remainder; a negative remainder is shifted into range by one
// more modulo. This is the positive-modulo convention Spark uses to pick
// shuffle partitions, so indices match Spark for identical hash codes.
//
// n must be positive; Pmod panics otherwise, since a silently wrong index
// would misroute rows.
func Pmod(hash uint32, n int) int {
	if n < 1 {
		panic("sparkhash: Pmod requires a positive partition count")
	}
	r := int(int32(hash)) % n
	if r < 0 {
		return (r + n) % n
	}
	return r
}
