// Package partition routes the rows of Arrow record batches to
// Spark-compatible shuffle partitions.
//
// A Partitioner hashes the configured key columns of each batch with
// sparkhash.CreateHashes, starting every row from sparkhash.DefaultSeed, maps
// the codes through sparkhash.Pmod, and returns one roaring bitmap of row
// indices per partition. Rows therefore land in the same buckets Spark's hash
// partitioning would assign them.
package partition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/apache/arrow/go/v16/arrow"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sparkhash"
	"github.com/hupe1980/sparkhash/internal/pool"
)

var (
	// ErrInvalidNumPartitions is returned when the partition count is not positive.
	ErrInvalidNumPartitions = errors.New("number of partitions must be positive")

	// ErrNoKeyColumns is returned when no key column indices are given.
	ErrNoKeyColumns = errors.New("at least one key column index is required")
)

// Options configures a Partitioner.
type Options struct {
	// Logger receives per-batch debug logs. Defaults to a discarding logger;
	// the hashing itself never logs.
	Logger *slog.Logger

	// MaxConcurrency bounds how many batches PartitionAll hashes in
	// parallel. Each batch owns its own seed buffer, so this is purely a
	// CPU/allocation knob.
	MaxConcurrency int
}

// RowSets holds one bitmap of row indices per partition. Every non-null-key
// row of the source batch is a member of exactly one set.
type RowSets []*roaring.Bitmap

// NumRows returns the total number of rows across all partitions.
func (rs RowSets) NumRows() uint64 {
	var n uint64
	for _, set := range rs {
		n += set.GetCardinality()
	}
	return n
}

// Partitioner assigns batch rows to hash partitions. It is immutable after
// construction and safe for concurrent use.
type Partitioner struct {
	numPartitions  int
	keyIndices     []int
	logger         *slog.Logger
	maxConcurrency int
}

// New creates a Partitioner that partitions by the record columns at
// keyIndices, in that order. Key order matters: it must match the order the
// mirrored engine would hash, or composite keys land in different buckets.
func New(numPartitions int, keyIndices []int, optFns ...func(o *Options)) (*Partitioner, error) {
	opts := Options{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxConcurrency: 16,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if numPartitions < 1 {
		return nil, ErrInvalidNumPartitions
	}
	if len(keyIndices) == 0 {
		return nil, ErrNoKeyColumns
	}
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Partitioner{
		numPartitions:  numPartitions,
		keyIndices:     slices.Clone(keyIndices),
		logger:         opts.Logger,
		maxConcurrency: opts.MaxConcurrency,
	}, nil
}

// Partition hashes the key columns of rec and returns the per-partition row
// sets. Rows whose entire key is null hash to the partition of the unchanged
// initial seed, matching the mirrored engine.
func (p *Partitioner) Partition(rec arrow.Record) (RowSets, error) {
	cols := make([]arrow.Array, len(p.keyIndices))
	for i, idx := range p.keyIndices {
		if idx < 0 || idx >= int(rec.NumCols()) {
			return nil, fmt.Errorf("key column index %d out of range for record with %d columns", idx, rec.NumCols())
		}
		cols[i] = rec.Column(idx)
	}

	rows := int(rec.NumRows())
	seeds := pool.GetSeeds(rows)
	defer pool.PutSeeds(seeds)
	for i := range seeds {
		seeds[i] = sparkhash.DefaultSeed
	}

	if _, err := sparkhash.CreateHashes(cols, seeds); err != nil {
		return nil, err
	}

	sets := make(RowSets, p.numPartitions)
	for i := range sets {
		sets[i] = roaring.New()
	}
	for row, h := range seeds {
		sets[sparkhash.Pmod(h, p.numPartitions)].Add(uint32(row))
	}

	p.logger.Debug("partitioned batch", "rows", rows, "partitions", p.numPartitions)

	return sets, nil
}

// PartitionAll partitions every record and returns the row sets in input
// order. Batches are processed in parallel up to MaxConcurrency; each worker
// owns a distinct seed buffer, so no locking is involved. The first error
// aborts the remaining work.
func (p *Partitioner) PartitionAll(ctx context.Context, recs []arrow.Record) ([]RowSets, error) {
	out := make([]RowSets, len(recs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrency)

	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sets, err := p.Partition(rec)
			if err != nil {
				return err
			}
			out[i] = sets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
