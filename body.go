package http1

import (
	"io"

	"github.com/pkg/errors"
)

// Body yields message payload as a finite sequence of byte spans. It is
// drained destructively by a single consumer; a span stays valid until the
// following call to Next. More must not invalidate an outstanding span.
type Body interface {
	// More reports whether at least one more chunk can be taken.
	More() bool
	// Next returns the next chunk. Calling it after exhaustion returns
	// ErrBodyExhausted.
	Next() ([]byte, error)
}

// SizedBody is a Body whose total payload size is known before the first
// chunk is taken. A negative size means the size is not actually known.
type SizedBody interface {
	Body
	Size() int64
}

// BytesBody serves one byte slice as a single chunk of known size.
type BytesBody struct {
	b    []byte
	done bool
}

func NewBytesBody(b []byte) *BytesBody {
	return &BytesBody{b: b}
}

func (b *BytesBody) More() bool {
	return !b.done && len(b.b) > 0
}

func (b *BytesBody) Next() ([]byte, error) {
	if b.done || len(b.b) == 0 {
		return nil, errors.WithStack(ErrBodyExhausted)
	}
	b.done = true
	return b.b, nil
}

func (b *BytesBody) Size() int64 {
	return int64(len(b.b))
}

// ChunksBody serves an explicit list of chunks; the total size is known.
type ChunksBody struct {
	chunks [][]byte
	size   int64
}

func NewChunksBody(chunks ...[]byte) *ChunksBody {
	b := &ChunksBody{chunks: chunks}
	for _, c := range chunks {
		b.size += int64(len(c))
	}
	return b
}

func (b *ChunksBody) More() bool {
	return len(b.chunks) > 0
}

func (b *ChunksBody) Next() ([]byte, error) {
	if len(b.chunks) == 0 {
		return nil, errors.WithStack(ErrBodyExhausted)
	}
	c := b.chunks[0]
	b.chunks = b.chunks[1:]
	return c, nil
}

func (b *ChunksBody) Size() int64 {
	return b.size
}

// ReaderBody adapts an io.Reader into a Body, reading through two pooled
// buffers used alternately, so the span handed out last stays intact while
// the next read probes for more data. The size is unknown unless declared
// with NewSizedReaderBody.
type ReaderBody struct {
	r     io.Reader
	size  int64
	cur   []byte
	spare []byte
	chunk []byte
	err   error
	eof   bool
}

func NewReaderBody(r io.Reader) *ReaderBody {
	return &ReaderBody{r: r, size: -1}
}

// NewSizedReaderBody declares the total size up front so the message can be
// framed with a Content-Length. The reader must deliver exactly size bytes.
func NewSizedReaderBody(r io.Reader, size int64) *ReaderBody {
	return &ReaderBody{r: r, size: size}
}

func (b *ReaderBody) More() bool {
	if b.chunk != nil || b.err != nil {
		return true
	}
	if b.eof {
		return false
	}
	b.fill()
	return b.chunk != nil || b.err != nil
}

func (b *ReaderBody) Next() ([]byte, error) {
	if b.chunk == nil && b.err == nil && !b.eof {
		b.fill()
	}
	if c := b.chunk; c != nil {
		b.chunk = nil
		return c, nil
	}
	if b.err != nil {
		return nil, errors.WithStack(b.err)
	}
	return nil, errors.WithStack(ErrBodyExhausted)
}

func (b *ReaderBody) Size() int64 {
	return b.size
}

func (b *ReaderBody) fill() {
	// the buffer holding the last handed-out span becomes the spare;
	// reads go into the one whose span was consumed two fills ago
	b.cur, b.spare = b.spare, b.cur
	if b.cur == nil {
		b.cur = bufPool.Get().([]byte)
	}
	for {
		n, err := b.r.Read(b.cur)
		if n > 0 {
			b.chunk = b.cur[:n]
			if err == io.EOF {
				b.eof = true
			} else if err != nil {
				b.err = err
			}
			return
		}
		if err == io.EOF {
			b.eof = true
			// nothing was read into cur, so no outstanding span can
			// reference it; the spare may still be on the wire
			bufPool.Put(b.cur)
			b.cur = nil
			return
		}
		if err != nil {
			b.err = err
			return
		}
	}
}
