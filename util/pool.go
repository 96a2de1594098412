package util

import "sync"

// chunkPool recycles relay buffers so every forwarded chunk does not
// allocate. Buffers are always MaxChunk bytes.
var chunkPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, MaxChunk)
		return &buf
	},
}

// GetChunk retrieves a MaxChunk-sized buffer from the pool. Callers
// must return it with [PutChunk] when finished.
func GetChunk() *[]byte {
	return chunkPool.Get().(*[]byte)
}

// PutChunk returns a buffer to the pool for reuse.
func PutChunk(buf *[]byte) {
	if buf == nil {
		return
	}
	chunkPool.Put(buf)
}
