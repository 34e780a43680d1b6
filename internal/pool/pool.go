// Package pool provides reusable seed buffers for hot hashing paths.
// Uses sync.Pool so steady-state partitioning does not allocate per batch.
package pool

import "sync"

const (
	// defaultRows is the initial capacity of pooled buffers.
	defaultRows = 8192

	// maxRetainedRows caps the buffer size kept in the pool. Buffers grown
	// for unusually large batches are dropped instead of pinned forever.
	maxRetainedRows = 1 << 22
)

var seedPool = sync.Pool{
	New: func() any {
		buf := make([]uint32, 0, defaultRows)
		return &buf
	},
}

// GetSeeds returns a buffer of length rows. Contents are unspecified; callers
// must fill the buffer with their initial seed before use.
func GetSeeds(rows int) []uint32 {
	buf := seedPool.Get().(*[]uint32)
	if cap(*buf) < rows {
		seedPool.Put(buf)
		return make([]uint32, rows)
	}
	return (*buf)[:rows]
}

// PutSeeds returns a buffer obtained from GetSeeds to the pool. The caller
// must not use buf afterwards.
func PutSeeds(buf []uint32) {
	if cap(buf) > maxRetainedRows {
		return
	}
	buf = buf[:0]
	seedPool.Put(&buf)
}
