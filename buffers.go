package http1

import "net"

// A fragment is an ordered sequence of borrowed byte spans written with one
// vectored call. Consuming advances a view over the spans; the payload
// bytes themselves are never touched or copied.

func buffersLen(bufs net.Buffers) int {
	var n int
	for _, b := range bufs {
		n += len(b)
	}
	return n
}

// consumeBuffers drops the n leading bytes from the view.
func consumeBuffers(bufs net.Buffers, n int) net.Buffers {
	for n > 0 && len(bufs) > 0 {
		b := bufs[0]
		if n < len(b) {
			bufs[0] = b[n:]
			return bufs
		}
		n -= len(b)
		bufs = bufs[1:]
	}
	for len(bufs) > 0 && len(bufs[0]) == 0 {
		bufs = bufs[1:]
	}
	return bufs
}
