package http1

import (
	"bytes"
	"net"
)

// recordStream is a SyncWriteStream capturing everything written. It
// accepts at most max bytes per call (0 means unlimited) and records the
// size of every call.
type recordStream struct {
	buf   bytes.Buffer
	max   int
	calls []int

	failAt  int // 1-based call index to start failing at, 0 = never
	failErr error
}

func (s *recordStream) WriteSome(bufs net.Buffers) (int, error) {
	if s.failAt != 0 && len(s.calls)+1 >= s.failAt {
		return 0, s.failErr
	}
	limit := buffersLen(bufs)
	if s.max > 0 && limit > s.max {
		limit = s.max
	}
	var n int
	for _, b := range bufs {
		if n == limit {
			break
		}
		take := limit - n
		if take > len(b) {
			take = len(b)
		}
		s.buf.Write(b[:take])
		n += take
	}
	s.calls = append(s.calls, n)
	return n, nil
}

// manualExecutor queues posted handlers until run is called, making
// completion ordering observable.
type manualExecutor struct {
	q []func()
}

func (e *manualExecutor) Post(fn func()) {
	e.q = append(e.q, fn)
}

func (e *manualExecutor) run() {
	for len(e.q) > 0 {
		fn := e.q[0]
		e.q = e.q[1:]
		fn()
	}
}

// asyncStream resolves every write synchronously: the continuation fires
// inline from within AsyncWriteSome.
type asyncStream struct {
	recordStream
	ex manualExecutor
}

func (s *asyncStream) AsyncWriteSome(bufs net.Buffers, fn func(int, error)) {
	n, err := s.WriteSome(bufs)
	fn(n, err)
}

func (s *asyncStream) Executor() Executor { return &s.ex }

// stalledStream parks each write until resolve is called.
type stalledStream struct {
	recordStream
	ex      manualExecutor
	parked  func(int, error)
	pending net.Buffers
}

func (s *stalledStream) AsyncWriteSome(bufs net.Buffers, fn func(int, error)) {
	s.pending = bufs
	s.parked = fn
}

func (s *stalledStream) Executor() Executor { return &s.ex }

func (s *stalledStream) resolve() {
	fn, bufs := s.parked, s.pending
	s.parked, s.pending = nil, nil
	n, err := s.recordStream.WriteSome(bufs)
	fn(n, err)
}
