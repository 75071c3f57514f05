// pool.go - Only for internal buffer reuse
package brcode

import (
	"bytes"
	"sync"
)

// A static payload is around 100 bytes; the largest valid one is bounded
// by nine fields of at most 103 bytes each.
const payloadBufferSize = 256

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, payloadBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= 4*payloadBufferSize { // Don't pool huge buffers
		bufferPool.Put(buf)
	}
}
