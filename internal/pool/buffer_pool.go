package pool

import "sync"

// BufferPool implements a pool of growable byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool whose buffers start with the given capacity
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

// Get retrieves an empty buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// ChunkPool implements a pool of fixed-size read buffers
type ChunkPool struct {
	pool      sync.Pool
	chunkSize int
}

// NewChunkPool creates a new pool of read buffers of chunkSize bytes
func NewChunkPool(chunkSize int) *ChunkPool {
	return &ChunkPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, chunkSize)
				return &buffer
			},
		},
		chunkSize: chunkSize,
	}
}

// Get retrieves a read buffer of exactly ChunkSize bytes
func (cp *ChunkPool) Get() *[]byte {
	buffer := cp.pool.Get().(*[]byte)
	if cap(*buffer) < cp.chunkSize {
		*buffer = make([]byte, cp.chunkSize)
	}
	*buffer = (*buffer)[:cp.chunkSize]
	return buffer
}

// Put returns a read buffer to the pool
func (cp *ChunkPool) Put(buffer *[]byte) {
	cp.pool.Put(buffer)
}

// ChunkSize returns the size of the buffers handed out by Get
func (cp *ChunkPool) ChunkSize() int {
	return cp.chunkSize
}
