package http1

import (
	"io"
	"net"
)

// SyncWriteStream is the blocking byte sink driven by the write algorithms:
// one bounded operation that writes up to the given spans and reports how
// many bytes it accepted. A short count without an error is valid. The
// stream may consume the passed view.
type SyncWriteStream interface {
	WriteSome(bufs net.Buffers) (int, error)
}

// AsyncWriteStream is the same operation in suspend/resume form. The
// continuation must be invoked exactly once, never inline from within
// AsyncWriteSome, with the byte count or the error.
type AsyncWriteStream interface {
	AsyncWriteSome(bufs net.Buffers, fn func(n int, err error))
}

// Executor defers a completion handler to a later scheduler turn.
type Executor interface {
	Post(fn func())
}

type goExecutor struct{}

func (goExecutor) Post(fn func()) { go fn() }

// executorOf picks the executor completions are posted through: the
// stream's own, when it has one, else a fresh goroutine per completion.
func executorOf(dst AsyncWriteStream) Executor {
	if e, ok := dst.(interface{ Executor() Executor }); ok {
		return e.Executor()
	}
	return goExecutor{}
}

type streamWriter struct {
	w io.Writer
}

// NewStream adapts a plain io.Writer into a SyncWriteStream. Spans are
// written in order; the count covers whatever was accepted before the first
// error.
func NewStream(w io.Writer) SyncWriteStream {
	return &streamWriter{w: w}
}

func (s *streamWriter) WriteSome(bufs net.Buffers) (int, error) {
	var total int
	for _, b := range bufs {
		n, err := s.w.Write(b)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
