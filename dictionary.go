package sparkhash

import (
	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
)

// hashDictionary hashes a dictionary-encoded column: each distinct value is
// hashed once, then the results fan out to rows by key index. Large values
// (typically strings) are hashed once instead of once per row.
//
// The value hashes are computed from seed zero, NOT from the rows' incoming
// chained seeds, and they replace the incoming seed outright at every
// non-null row. A dictionary column inside a composite key therefore erases
// whatever earlier columns chained into it. The engine this mirrors behaves
// the same way, and bucket placement must match it bit for bit, so the reset
// is reproduced here deliberately.
func hashDictionary(dict *array.Dictionary, seeds []uint32) error {
	typ := dict.DataType().(*arrow.DictionaryType)
	switch typ.IndexType.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
	default:
		return &ErrUnsupportedType{DataType: typ}
	}

	values := dict.Dictionary()
	valueHashes := make([]uint32, values.Len())
	if _, err := CreateHashes([]arrow.Array{values}, valueHashes); err != nil {
		return err
	}

	for i := range seeds {
		if dict.IsNull(i) {
			continue
		}
		idx := dict.GetValueIndex(i)
		if idx < 0 || idx >= values.Len() {
			return &ErrKeyConversion{Key: idx, DataType: typ}
		}
		seeds[i] = valueHashes[idx]
	}
	return nil
}
