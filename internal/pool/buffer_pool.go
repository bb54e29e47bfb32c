// Package pool holds sync.Pool backed scratch buffers for the normalizer's hot path.
package pool

import "sync"

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer with at least minCap capacity and zero length.
func (bp *BufferPool) Get(minCap int) *[]byte {
	buffer := bp.pool.Get().(*[]byte)
	if cap(*buffer) < minCap {
		*buffer = make([]byte, 0, minCap)
	}
	return buffer
}

// Put returns a buffer to the pool for reuse. Oversized buffers are dropped
// so one long input does not pin memory.
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > maxRetained(bp.size) {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// TokenPool implements a pool of string slices used while filtering tokens.
type TokenPool struct {
	pool sync.Pool
	size int
}

// NewTokenPool creates a pool of token slices with the given initial capacity.
func NewTokenPool(size int) *TokenPool {
	return &TokenPool{
		pool: sync.Pool{
			New: func() interface{} {
				tokens := make([]string, 0, size)
				return &tokens
			},
		},
		size: size,
	}
}

// Get retrieves an empty token slice from the pool
func (tp *TokenPool) Get() *[]string {
	return tp.pool.Get().(*[]string)
}

// Put clears the slice and returns it to the pool.
func (tp *TokenPool) Put(tokens *[]string) {
	if cap(*tokens) > maxRetained(tp.size) {
		return
	}
	clear(*tokens)
	*tokens = (*tokens)[:0]
	tp.pool.Put(tokens)
}

func maxRetained(size int) int {
	if size < 1024 {
		return 64 * 1024
	}
	return 64 * size
}
