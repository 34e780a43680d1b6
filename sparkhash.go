package sparkhash

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
	"github.com/apache/arrow/go/v16/arrow/decimal128"

	"github.com/hupe1980/sparkhash/internal/murmur3"
)

// DefaultSeed is the initial seed Spark uses when composing hash keys.
// Callers that need parity with Spark must start from it.
const DefaultSeed uint32 = 42

// CreateHashes computes one hash code per row from the values in cols,
// updating seeds in place and returning the same slice.
//
// Columns are processed in the order given. For each non-null row the value's
// canonical little-endian encoding is hashed with the row's current seed and
// the result written back, so later columns chain on earlier ones and the
// final code covers the whole key. Null rows keep their seed untouched.
//
// seeds must hold exactly one entry per row, pre-filled with the initial seed
// (DefaultSeed for Spark parity), and must not be shared with concurrent
// calls for the duration of this one.
//
// A column type outside the supported set fails with *ErrUnsupportedType; a
// dictionary key that resolves outside its value array fails with
// *ErrKeyConversion. Both are deterministic, so retrying cannot succeed.
func CreateHashes(cols []arrow.Array, seeds []uint32) ([]uint32, error) {
	for _, col := range cols {
		if col.Len() != len(seeds) {
			return nil, fmt.Errorf("%w: %d seeds, %d rows in %s column", ErrSeedLength, len(seeds), col.Len(), col.DataType())
		}
		if err := hashColumn(col, seeds); err != nil {
			return nil, err
		}
	}
	return seeds, nil
}

// hashColumn dispatches on the column's type ID. The supported set is closed;
// every arm must encode exactly the bytes Spark's Murmur3Hash would hash.
func hashColumn(col arrow.Array, seeds []uint32) error {
	switch col.DataType().ID() {
	case arrow.BOOL:
		hashBoolean(col.(*array.Boolean), seeds)
	case arrow.INT8:
		hashWords32[int8](col.(*array.Int8), seeds)
	case arrow.INT16:
		hashWords32[int16](col.(*array.Int16), seeds)
	case arrow.INT32:
		hashWords32[int32](col.(*array.Int32), seeds)
	case arrow.INT64:
		hashWords64[int64](col.(*array.Int64), seeds)
	case arrow.FLOAT32:
		hashFloat32(col.(*array.Float32), seeds)
	case arrow.FLOAT64:
		hashFloat64(col.(*array.Float64), seeds)
	case arrow.DATE32:
		hashWords32[arrow.Date32](col.(*array.Date32), seeds)
	case arrow.DATE64:
		hashWords64[arrow.Date64](col.(*array.Date64), seeds)
	case arrow.TIMESTAMP:
		// All units hash the raw 64-bit value in its native resolution.
		hashWords64[arrow.Timestamp](col.(*array.Timestamp), seeds)
	case arrow.STRING:
		hashBytes[string](col.(*array.String), seeds)
	case arrow.LARGE_STRING:
		hashBytes[string](col.(*array.LargeString), seeds)
	case arrow.BINARY:
		hashBytes[[]byte](col.(*array.Binary), seeds)
	case arrow.LARGE_BINARY:
		hashBytes[[]byte](col.(*array.LargeBinary), seeds)
	case arrow.FIXED_SIZE_BINARY:
		hashBytes[[]byte](col.(*array.FixedSizeBinary), seeds)
	case arrow.DECIMAL128:
		hashDecimal128(col.(*array.Decimal128), seeds)
	case arrow.DICTIONARY:
		return hashDictionary(col.(*array.Dictionary), seeds)
	default:
		return &ErrUnsupportedType{DataType: col.DataType()}
	}
	return nil
}

// valueArray is the common shape of Arrow arrays with typed per-row access.
type valueArray[T any] interface {
	arrow.Array
	Value(i int) T
}

// hashWords32 hashes integral values at or below 32 bits, sign-extended to a
// single 32-bit little-endian word. Null-free columns take the branch-free
// loop.
func hashWords32[T ~int8 | ~int16 | ~int32](arr valueArray[T], seeds []uint32) {
	if arr.NullN() == 0 {
		for i := range seeds {
			seeds[i] = murmur3.HashInt32(int32(arr.Value(i)), seeds[i])
		}
		return
	}
	for i := range seeds {
		if !arr.IsNull(i) {
			seeds[i] = murmur3.HashInt32(int32(arr.Value(i)), seeds[i])
		}
	}
}

// hashWords64 hashes 64-bit integral values as two little-endian words.
func hashWords64[T ~int64](arr valueArray[T], seeds []uint32) {
	if arr.NullN() == 0 {
		for i := range seeds {
			seeds[i] = murmur3.HashInt64(int64(arr.Value(i)), seeds[i])
		}
		return
	}
	for i := range seeds {
		if !arr.IsNull(i) {
			seeds[i] = murmur3.HashInt64(int64(arr.Value(i)), seeds[i])
		}
	}
}

// hashBytes hashes variable-length content as raw bytes, no length prefix.
func hashBytes[T ~string | ~[]byte](arr valueArray[T], seeds []uint32) {
	if arr.NullN() == 0 {
		for i := range seeds {
			seeds[i] = murmur3.Hash32(arr.Value(i), seeds[i])
		}
		return
	}
	for i := range seeds {
		if !arr.IsNull(i) {
			seeds[i] = murmur3.Hash32(arr.Value(i), seeds[i])
		}
	}
}

func hashBoolValue(v bool, seed uint32) uint32 {
	if v {
		return murmur3.HashInt32(1, seed)
	}
	return murmur3.HashInt32(0, seed)
}

func hashBoolean(arr *array.Boolean, seeds []uint32) {
	if arr.NullN() == 0 {
		for i := range seeds {
			seeds[i] = hashBoolValue(arr.Value(i), seeds[i])
		}
		return
	}
	for i := range seeds {
		if !arr.IsNull(i) {
			seeds[i] = hashBoolValue(arr.Value(i), seeds[i])
		}
	}
}

func hashFloat32Value(v float32, seed uint32) uint32 {
	if v == 0 && math.Signbit(float64(v)) {
		// Spark hashes -0.0 as the integer zero constant.
		return murmur3.HashInt32(0, seed)
	}
	return murmur3.HashInt32(int32(math.Float32bits(v)), seed)
}

func hashFloat32(arr *array.Float32, seeds []uint32) {
	if arr.NullN() == 0 {
		for i := range seeds {
			seeds[i] = hashFloat32Value(arr.Value(i), seeds[i])
		}
		return
	}
	for i := range seeds {
		if !arr.IsNull(i) {
			seeds[i] = hashFloat32Value(arr.Value(i), seeds[i])
		}
	}
}

func hashFloat64Value(v float64, seed uint32) uint32 {
	if v == 0 && math.Signbit(v) {
		return murmur3.HashInt64(0, seed)
	}
	return murmur3.HashInt64(int64(math.Float64bits(v)), seed)
}

func hashFloat64(arr *array.Float64, seeds []uint32) {
	if arr.NullN() == 0 {
		for i := range seeds {
			seeds[i] = hashFloat64Value(arr.Value(i), seeds[i])
		}
		return
	}
	for i := range seeds {
		if !arr.IsNull(i) {
			seeds[i] = hashFloat64Value(arr.Value(i), seeds[i])
		}
	}
}

// hashDecimal128Value hashes the 16-byte little-endian unscaled integer.
func hashDecimal128Value(n decimal128.Num, seed uint32) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], n.LowBits())
	binary.LittleEndian.PutUint64(buf[8:], uint64(n.HighBits()))
	return murmur3.Hash32(buf[:], seed)
}

func hashDecimal128(arr *array.Decimal128, seeds []uint32) {
	if arr.NullN() == 0 {
		for i := range seeds {
			seeds[i] = hashDecimal128Value(arr.Value(i), seeds[i])
		}
		return
	}
	for i := range seeds {
		if !arr.IsNull(i) {
			seeds[i] = hashDecimal128Value(arr.Value(i), seeds[i])
		}
	}
}
