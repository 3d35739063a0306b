// Package pool provides typed object pooling for the decode and encode
// hot paths. It wraps sync.Pool with reset-on-return semantics and
// pre-configured global pools for the two objects the codec recycles
// constantly: tag field maps and string builders.
package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// Pool is a generic object pool with type safety. The reset function,
// if provided, runs before an object re-enters the pool. Safe for
// concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)

	allocated int64
	hits      int64
}

// New creates a typed pool from a factory and an optional reset function.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.allocated, 1)
		return newFn()
	}
	return p
}

// Get retrieves an object, allocating via the factory when the pool is empty.
func (p *Pool[T]) Get() T {
	v := p.pool.Get().(T)
	atomic.AddInt64(&p.hits, 1)
	return v
}

// Put resets the object and returns it to the pool.
func (p *Pool[T]) Put(v T) {
	if p.reset != nil {
		p.reset(v)
	}
	p.pool.Put(v)
}

// Stats returns the total factory allocations and Get calls since creation.
func (p *Pool[T]) Stats() (allocated, gets int64) {
	return atomic.LoadInt64(&p.allocated), atomic.LoadInt64(&p.hits)
}

// fieldMapCap bounds the size of maps kept for reuse; a record with an
// absurd tag count is let go to the GC instead of pinning its buckets.
const fieldMapCap = 64

var fieldMaps = New(
	func() map[string]string { return make(map[string]string, 16) },
	func(m map[string]string) { clear(m) },
)

// GetFieldMap returns an empty tag→value map from the global pool.
func GetFieldMap() map[string]string {
	return fieldMaps.Get()
}

// PutFieldMap returns a field map to the pool. Oversized maps are dropped.
func PutFieldMap(m map[string]string) {
	if m == nil || len(m) > fieldMapCap {
		return
	}
	fieldMaps.Put(m)
}

// bufferCap bounds retained buffer capacity (64 KiB); encoders of
// pathological records should not pin large buffers between uses.
const bufferCap = 64 << 10

var buffers = New(
	func() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 256)) },
	func(b *bytes.Buffer) { b.Reset() },
)

// GetBuffer returns a reset byte buffer from the global pool.
func GetBuffer() *bytes.Buffer {
	return buffers.Get()
}

// PutBuffer returns a buffer to the pool. Oversized buffers are dropped.
func PutBuffer(b *bytes.Buffer) {
	if b == nil || b.Cap() > bufferCap {
		return
	}
	buffers.Put(b)
}
