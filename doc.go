// Package sparkhash computes per-row hash codes over Apache Arrow columns
// that are bit-for-bit identical to the codes produced by Apache Spark's
// Murmur3Hash expression.
//
// Rows hashed here land in the same shuffle and join buckets Spark would put
// them in, which is the whole point: hash partitioners, hash joins, and
// parity checks that interoperate with Spark's data layout can route rows
// without re-reading them through Spark. Correctness is defined by exact
// reproduction of Spark's numeric coercions and edge-case rules (null
// skipping, negative-zero folding, sign-extended tail bytes, dictionary
// seed reset); a deviation does not fail, it silently misroutes data.
//
// # Quick Start
//
//	seeds := make([]uint32, rows)
//	for i := range seeds {
//		seeds[i] = sparkhash.DefaultSeed
//	}
//	if _, err := sparkhash.CreateHashes(keyColumns, seeds); err != nil {
//		return err
//	}
//	for row, h := range seeds {
//		bucket := sparkhash.Pmod(h, numPartitions)
//		// route row to bucket
//	}
//
// Multi-column keys are realized by seed chaining: each column's hash output
// becomes the next column's input seed, per row. Pass key columns in the
// exact order Spark would and start from DefaultSeed to match its
// composite-key convention.
//
// The supported types are Boolean, Int8-64, Float32/64, Date32/64, Timestamp
// (any unit), String/LargeString, Binary/LargeBinary/FixedSizeBinary,
// Decimal128, and Dictionary over any of these with integer keys. Anything
// else fails with *ErrUnsupportedType.
//
// All functions are pure computation: no I/O, no internal shared state.
// Calls may run concurrently as long as each owns its seed slice.
//
// The partition subpackage provides a batch-level hash partitioner built on
// this core.
package sparkhash
