package sparkhash_test

import (
	"fmt"
	"log"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
	"github.com/apache/arrow/go/v16/arrow/memory"

	"github.com/hupe1980/sparkhash"
)

// Example routes the rows of a single-column key to Spark-compatible shuffle
// partitions.
func Example() {
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues([]int64{1, 0, -1}, nil)
	col := b.NewArray()
	defer col.Release()

	seeds := make([]uint32, col.Len())
	for i := range seeds {
		seeds[i] = sparkhash.DefaultSeed
	}
	if _, err := sparkhash.CreateHashes([]arrow.Array{col}, seeds); err != nil {
		log.Fatal(err)
	}

	for _, h := range seeds {
		fmt.Println(sparkhash.Pmod(h, 200))
	}
	// Output:
	// 69
	// 5
	// 193
}
