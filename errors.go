package sparkhash

import (
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v16/arrow"
)

var (
	// ErrSeedLength is returned when the seed slice length does not match a
	// column's row count.
	ErrSeedLength = errors.New("seed slice length must equal column row count")
)

// ErrUnsupportedType indicates a column's logical type, or a dictionary's
// key type, is outside the supported closed set. This is a caller/config
// mismatch, not a transient condition; retrying reproduces it.
type ErrUnsupportedType struct {
	DataType arrow.DataType
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported data type in hasher: %s", e.DataType)
}

// ErrKeyConversion indicates a dictionary key value that does not resolve to
// a valid index into the dictionary's value array.
type ErrKeyConversion struct {
	Key      int
	DataType arrow.DataType
}

func (e *ErrKeyConversion) Error() string {
	return fmt.Sprintf("cannot convert key value %d to a valid index in dictionary of type %s", e.Key, e.DataType)
}
