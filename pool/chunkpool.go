// File: pool/chunkpool.go
// Author: momentics <momentics@gmail.com>

package pool

import (
	"sync"
	"sync/atomic"
)

// ChunkSize is the fixed capacity of every pooled chunk. It is also the
// ceiling for a single file read during flush and for one copied packet, so
// larger writes split into chunk-sized packets.
const ChunkSize = 64 * 1024

// ChunkPool recycles ChunkSize byte slices.
type ChunkPool struct {
	pool sync.Pool
	gets atomic.Int64
	puts atomic.Int64
	news atomic.Int64
}

// ChunkPoolStats aggregates allocation/reuse accounting.
type ChunkPoolStats struct {
	Gets   int64
	Puts   int64
	Allocs int64
}

// NewChunkPool creates an empty chunk pool.
func NewChunkPool() *ChunkPool {
	cp := &ChunkPool{}
	cp.pool.New = func() any {
		cp.news.Add(1)
		return make([]byte, ChunkSize)
	}
	return cp
}

// Get returns a chunk with len == ChunkSize.
func (cp *ChunkPool) Get() []byte {
	cp.gets.Add(1)
	return cp.pool.Get().([]byte)
}

// Put returns a chunk to the pool. Slices that did not originate from Get
// (wrong capacity, or resliced off the front) are left for the GC.
func (cp *ChunkPool) Put(b []byte) {
	if cap(b) != ChunkSize {
		return
	}
	cp.puts.Add(1)
	cp.pool.Put(b[:ChunkSize])
}

// Stats exposes resource accounting for observability.
func (cp *ChunkPool) Stats() ChunkPoolStats {
	return ChunkPoolStats{
		Gets:   cp.gets.Load(),
		Puts:   cp.puts.Load(),
		Allocs: cp.news.Load(),
	}
}
