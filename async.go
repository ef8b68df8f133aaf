package http1

import "github.com/pkg/errors"

// The asynchronous write algorithms are composed operations: a state object
// issues one suspended write at a time and is re-entered by the transport's
// continuation. The final handler is always posted through the executor,
// never invoked from within the initiating call, even when every transport
// write completes instantly. Only one operation may be outstanding per
// serializer; starting a second one completes it with ErrConcurrentWrite.

type opKind int8

const (
	opSome opKind = iota
	opHeader
	opFull
)

type asyncWriteOp struct {
	dst     AsyncWriteStream
	sr      *Serializer
	ex      Executor
	kind    opKind
	handler func(error)
}

// AsyncWriteSome transmits one bounded step of the serializer's output and
// posts handler with the result.
func AsyncWriteSome(dst AsyncWriteStream, sr *Serializer, handler func(error)) {
	startWriteOp(dst, sr, opSome, handler)
}

// AsyncWriteHeader transmits the message header only, in split mode, and
// posts handler once the header is on the wire.
func AsyncWriteHeader(dst AsyncWriteStream, sr *Serializer, handler func(error)) {
	sr.Split(true)
	startWriteOp(dst, sr, opHeader, handler)
}

// AsyncWrite transmits the serializer's remaining output until the message
// is complete, then posts handler.
func AsyncWrite(dst AsyncWriteStream, sr *Serializer, handler func(error)) {
	startWriteOp(dst, sr, opFull, handler)
}

// AsyncWriteMessage transmits a whole message through a private serializer
// with no chunk decorator. A close-delimited message that transmits
// successfully completes with ErrEndOfStream, as in WriteMessage.
func AsyncWriteMessage(dst AsyncWriteStream, msg *Message, handler func(error)) {
	ex := executorOf(dst)
	sr, err := NewSerializer(msg)
	if err != nil {
		ex.Post(func() { handler(err) })
		return
	}
	startWriteOp(dst, sr, opFull, func(err error) {
		if err == nil && sr.NeedsClose() {
			err = errors.WithStack(ErrEndOfStream)
		}
		handler(err)
	})
}

func startWriteOp(dst AsyncWriteStream, sr *Serializer, kind opKind, handler func(error)) {
	ex := executorOf(dst)
	if !sr.acquire() {
		ex.Post(func() { handler(errors.WithStack(ErrConcurrentWrite)) })
		return
	}
	op := &asyncWriteOp{dst: dst, sr: sr, ex: ex, kind: kind, handler: handler}
	op.step()
}

func (op *asyncWriteOp) step() {
	for {
		if op.finished() {
			op.complete(nil)
			return
		}
		frag, err := op.sr.Next()
		if err != nil {
			op.complete(err)
			return
		}
		if frag == nil {
			// production discovered completion
			continue
		}
		op.dst.AsyncWriteSome(frag, op.wrote)
		return
	}
}

func (op *asyncWriteOp) wrote(n int, err error) {
	if n > 0 {
		if cerr := op.sr.Consume(n); cerr != nil {
			op.complete(cerr)
			return
		}
	}
	if err != nil {
		op.sr.fail(err)
		op.complete(errors.WithStack(err))
		return
	}
	if op.kind == opSome {
		op.complete(nil)
		return
	}
	op.step()
}

func (op *asyncWriteOp) finished() bool {
	if op.kind == opHeader {
		return op.sr.HeaderDone()
	}
	return op.sr.Done()
}

func (op *asyncWriteOp) complete(err error) {
	op.sr.release()
	op.ex.Post(func() { op.handler(err) })
}
