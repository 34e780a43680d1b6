package partition

import (
	"context"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
	"github.com/apache/arrow/go/v16/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sparkhash"
)

func buildRecord(t *testing.T, ids []int64, names []string) arrow.Record {
	t.Helper()
	mem := memory.DefaultAllocator

	ib := array.NewInt64Builder(mem)
	defer ib.Release()
	ib.AppendValues(ids, nil)
	idCol := ib.NewArray()
	defer idCol.Release()

	sb := array.NewStringBuilder(mem)
	defer sb.Release()
	sb.AppendValues(names, nil)
	nameCol := sb.NewArray()
	defer nameCol.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String},
	}, nil)

	return array.NewRecord(schema, []arrow.Array{idCol, nameCol}, int64(len(ids)))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(0, []int{0})
	assert.ErrorIs(t, err, ErrInvalidNumPartitions)

	_, err = New(-3, []int{0})
	assert.ErrorIs(t, err, ErrInvalidNumPartitions)

	_, err = New(4, nil)
	assert.ErrorIs(t, err, ErrNoKeyColumns)
}

func TestPartitioner_Partition(t *testing.T) {
	rec := buildRecord(t,
		[]int64{1, 0, -1, math.MaxInt64, math.MinInt64},
		[]string{"a", "b", "c", "d", "e"},
	)
	defer rec.Release()

	p, err := New(200, []int{0})
	require.NoError(t, err)

	sets, err := p.Partition(rec)
	require.NoError(t, err)
	require.Len(t, sets, 200)

	// Spark's partition assignment for these int64 keys with n=200.
	expected := []int{69, 5, 193, 171, 115}
	for row, part := range expected {
		assert.True(t, sets[part].Contains(uint32(row)), "row %d should be in partition %d", row, part)
	}
	assert.Equal(t, uint64(len(expected)), sets.NumRows())
}

func TestPartitioner_Partition_CompositeKey(t *testing.T) {
	rec := buildRecord(t,
		[]int64{1, 2, 3},
		[]string{"x", "y", "z"},
	)
	defer rec.Release()

	p, err := New(16, []int{0, 1})
	require.NoError(t, err)

	sets, err := p.Partition(rec)
	require.NoError(t, err)

	// The composite assignment must match chaining both key columns by hand.
	seeds := []uint32{sparkhash.DefaultSeed, sparkhash.DefaultSeed, sparkhash.DefaultSeed}
	_, err = sparkhash.CreateHashes([]arrow.Array{rec.Column(0), rec.Column(1)}, seeds)
	require.NoError(t, err)

	for row, h := range seeds {
		assert.True(t, sets[sparkhash.Pmod(h, 16)].Contains(uint32(row)))
	}
}

func TestPartitioner_Partition_KeyIndexOutOfRange(t *testing.T) {
	rec := buildRecord(t, []int64{1}, []string{"a"})
	defer rec.Release()

	p, err := New(4, []int{2})
	require.NoError(t, err)

	_, err = p.Partition(rec)
	assert.Error(t, err)
}

func TestPartitioner_PartitionAll(t *testing.T) {
	recs := []arrow.Record{
		buildRecord(t, []int64{1, 0, -1}, []string{"a", "b", "c"}),
		buildRecord(t, []int64{math.MaxInt64, math.MinInt64}, []string{"d", "e"}),
		buildRecord(t, []int64{}, []string{}),
	}
	for _, rec := range recs {
		defer rec.Release()
	}

	p, err := New(200, []int{0}, func(o *Options) {
		o.MaxConcurrency = 2
		o.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	})
	require.NoError(t, err)

	all, err := p.PartitionAll(context.Background(), recs)
	require.NoError(t, err)
	require.Len(t, all, len(recs))

	// Results are in input order and identical to sequential calls.
	for i, rec := range recs {
		sequential, err := p.Partition(rec)
		require.NoError(t, err)
		require.Len(t, all[i], len(sequential))
		for part := range sequential {
			assert.True(t, sequential[part].Equals(all[i][part]), "record %d partition %d", i, part)
		}
	}
}

func TestPartitioner_PartitionAll_PropagatesError(t *testing.T) {
	mem := memory.DefaultAllocator
	ub := array.NewUint32Builder(mem)
	defer ub.Release()
	ub.AppendValues([]uint32{1, 2}, nil)
	col := ub.NewArray()
	defer col.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "u", Type: arrow.PrimitiveTypes.Uint32}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{col}, 2)
	defer rec.Release()

	p, err := New(4, []int{0})
	require.NoError(t, err)

	_, err = p.PartitionAll(context.Background(), []arrow.Record{rec})
	require.Error(t, err)

	var ute *sparkhash.ErrUnsupportedType
	assert.ErrorAs(t, err, &ute)
}
