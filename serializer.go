package http1

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

type phase int8

const (
	phaseNotStarted phase = iota
	phaseHeader     // header fragment in flight
	phaseBody       // producing plain body fragments
	phaseChunks     // producing framed chunks and the terminator
	phaseComplete
	phaseFailed
)

// Serializer turns one Message into a sequence of wire fragments. It is
// bound to one message, good for exactly one pass, and not safe for use by
// more than one writer at a time.
//
// Callers pull fragments with Next and report transmitted bytes with
// Consume; a partially consumed fragment is handed out again from the exact
// byte offset on the following Next. Framing metadata (header text, chunk
// size lines, delimiters) is materialized in pooled buffers; body payload
// spans are referenced, never copied.
type Serializer struct {
	msg  *Message
	mode framingMode
	clen int64
	body Body

	phase        phase
	nextPhase    phase
	headerInFrag bool
	headerDone   bool
	split        bool
	err          error

	pending net.Buffers
	fragLen int
	active  bool

	hbuf *bytebufferpool.ByteBuffer
	cbuf *bytebufferpool.ByteBuffer

	decorator  ChunkDecorator
	chunkIndex int

	writing bool
}

// NewSerializer derives the framing mode and binds the serializer to msg.
// The message must not change until the pass completes or fails.
func NewSerializer(msg *Message) (*Serializer, error) {
	mode, clen, err := msg.framing()
	if err != nil {
		return nil, err
	}
	s := &Serializer{msg: msg, mode: mode, clen: clen, body: msg.Body}
	if !msg.Request && bodilessStatus(msg.status()) {
		s.body = nil
	}
	return s, nil
}

// SetDecorator installs the chunk decorator. Only meaningful before the
// first call to Next, and only for chunked framing.
func (s *Serializer) SetDecorator(d ChunkDecorator) {
	s.decorator = d
}

// Split controls whether the header may share a fragment with body data.
// WriteHeader sets it so the pass can pause cleanly at the header boundary.
func (s *Serializer) Split(v bool) {
	s.split = v
}

// HeaderDone reports whether the rendered header has been fully consumed.
func (s *Serializer) HeaderDone() bool {
	return s.headerDone
}

// Done reports whether the complete message has been produced and consumed.
func (s *Serializer) Done() bool {
	return s.phase == phaseComplete
}

// NeedsClose reports whether the framing requires closing the connection
// after the message: true only for close-delimited bodies.
func (s *Serializer) NeedsClose() bool {
	return s.mode == framingCloseDelimited
}

// Next returns the fragment to transmit: the unconsumed rest of the pending
// fragment if one is in flight, otherwise the next one in framing order. A
// nil fragment with nil error means production just discovered completion;
// Done reports true afterwards. Calling Next after Done fails with
// ErrSerializerDone.
func (s *Serializer) Next() (net.Buffers, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.active {
		return s.view(), nil
	}
	switch s.phase {
	case phaseNotStarted:
		return s.produceHeader()
	case phaseBody:
		return s.produceBody()
	case phaseChunks:
		return s.produceChunk()
	}
	return nil, errors.WithStack(ErrSerializerDone)
}

// Consume records that the transport accepted the n leading bytes of the
// pending fragment. When the fragment is fully consumed its buffers are
// released and the phase advances.
func (s *Serializer) Consume(n int) error {
	if s.err != nil {
		return s.err
	}
	if n < 0 || n > s.fragLen {
		return s.fail(errors.WithStack(ErrConsumeRange))
	}
	s.pending = consumeBuffers(s.pending, n)
	s.fragLen -= n
	if s.active && s.fragLen == 0 {
		s.finishFragment()
	}
	return nil
}

func (s *Serializer) produceHeader() (net.Buffers, error) {
	s.hbuf = headBufPool.Get()
	renderHead(s.hbuf, s.msg, s.mode, s.clen)
	frag := net.Buffers{s.hbuf.B}
	s.headerInFrag = true
	switch {
	case s.mode == framingChunked:
		s.nextPhase = phaseChunks
	case s.split:
		s.nextPhase = phaseBody
		if s.body == nil {
			s.nextPhase = phaseComplete
		}
	default:
		chunk, more, err := s.nextBodyChunk()
		if err != nil {
			return nil, s.fail(err)
		}
		s.nextPhase = phaseComplete
		if chunk != nil {
			frag = append(frag, chunk)
			if more {
				s.nextPhase = phaseBody
			}
		}
	}
	s.phase = phaseHeader
	s.install(frag)
	return s.view(), nil
}

func (s *Serializer) produceBody() (net.Buffers, error) {
	chunk, more, err := s.nextBodyChunk()
	if err != nil {
		return nil, s.fail(err)
	}
	if chunk == nil {
		s.phase = phaseComplete
		s.releaseBufs()
		return nil, nil
	}
	s.nextPhase = phaseBody
	if !more {
		s.nextPhase = phaseComplete
	}
	s.install(net.Buffers{chunk})
	return s.view(), nil
}

func (s *Serializer) produceChunk() (net.Buffers, error) {
	chunk, _, err := s.nextBodyChunk()
	if err != nil {
		return nil, s.fail(err)
	}
	if s.cbuf == nil {
		s.cbuf = chunkBufPool.Get()
	}
	if chunk == nil {
		var trailer []byte
		if s.decorator != nil {
			trailer = s.decorator.Trailer()
		}
		s.cbuf.B = appendFinalChunk(s.cbuf.B[:0], trailer)
		s.nextPhase = phaseComplete
		s.install(net.Buffers{s.cbuf.B})
		return s.view(), nil
	}
	var ext []byte
	if s.decorator != nil {
		ext = s.decorator.ChunkExtension(s.chunkIndex, chunk)
	}
	s.chunkIndex++
	s.cbuf.B = appendChunkHeader(s.cbuf.B[:0], len(chunk), ext)
	s.nextPhase = phaseChunks
	s.install(net.Buffers{s.cbuf.B, chunk, byteCRLF})
	return s.view(), nil
}

// nextBodyChunk pulls the next non-empty chunk. A zero-length chunk from
// the source before exhaustion is skipped: it must never reach the wire,
// where a zero size means termination. Returns nil when the source is
// exhausted, plus whether further chunks may follow the returned one.
func (s *Serializer) nextBodyChunk() ([]byte, bool, error) {
	if s.body == nil {
		return nil, false, nil
	}
	for s.body.More() {
		c, err := s.body.Next()
		if err != nil {
			return nil, false, err
		}
		if len(c) > 0 {
			return c, s.body.More(), nil
		}
	}
	return nil, false, nil
}

func (s *Serializer) install(frag net.Buffers) {
	s.pending = frag
	s.fragLen = buffersLen(frag)
	s.active = true
}

// view hands out a copy of the span list so a transport that consumes its
// argument (net.Buffers.WriteTo does) cannot disturb the serializer state.
func (s *Serializer) view() net.Buffers {
	return append(net.Buffers{}, s.pending...)
}

func (s *Serializer) finishFragment() {
	s.active = false
	s.pending = nil
	if s.headerInFrag {
		s.headerInFrag = false
		s.headerDone = true
		headBufPool.Put(s.hbuf)
		s.hbuf = nil
	}
	s.phase = s.nextPhase
	if s.phase == phaseComplete {
		s.releaseBufs()
	}
}

func (s *Serializer) fail(err error) error {
	s.err = err
	s.phase = phaseFailed
	s.active = false
	s.pending = nil
	s.fragLen = 0
	s.releaseBufs()
	return err
}

func (s *Serializer) releaseBufs() {
	if s.hbuf != nil {
		headBufPool.Put(s.hbuf)
		s.hbuf = nil
	}
	if s.cbuf != nil {
		chunkBufPool.Put(s.cbuf)
		s.cbuf = nil
	}
}

func (s *Serializer) acquire() bool {
	if s.writing {
		return false
	}
	s.writing = true
	return true
}

func (s *Serializer) release() {
	s.writing = false
}

var chunkBufPool bytebufferpool.Pool

// renderHead writes the start-line, the user fields in stored order, and
// the framing fields selected by the mode. User Content-Length and
// Transfer-Encoding fields are replaced by the canonical ones so the wire
// always matches the derived framing.
func renderHead(dst *bytebufferpool.ByteBuffer, m *Message, mode framingMode, clen int64) {
	if m.Request {
		dst.Write(m.Method)
		dst.Write(byteSP)
		dst.Write(m.Target)
		dst.Write(byteSP)
		dst.Write(m.proto())
		dst.Write(byteCRLF)
	} else if m.isHTTP11() {
		dst.Write(statusLine(m.status()))
	} else {
		dst.Write(m.proto())
		dst.Write(byteSP)
		dst.B = strconv.AppendInt(dst.B, int64(m.status()), 10)
		dst.Write(byteSP)
		dst.WriteString(reason(m.status()))
		dst.Write(byteCRLF)
	}
	for _, f := range m.Header.fields {
		if eqFold(f.Name, HeaderContentLength) || eqFold(f.Name, HeaderTransferEncoding) {
			continue
		}
		dst.B = appendLine(dst.B, f.Name, f.Value)
	}
	switch mode {
	case framingContentLength:
		// a request gets the field when it has a payload or declared one
		// explicitly; a response always states its length
		if m.Request && (clen > 0 || m.Header.Has(HeaderContentLength)) ||
			!m.Request && !bodilessStatus(m.status()) {
			dst.Write(byteContentLength)
			dst.Write(byteColonSpace)
			dst.B = strconv.AppendInt(dst.B, clen, 10)
			dst.Write(byteCRLF)
		}
	case framingChunked:
		dst.B = appendLine(dst.B, byteTransferEncoding, byteChunked)
	case framingCloseDelimited:
		if !m.Header.Has(HeaderConnection) {
			dst.B = appendLine(dst.B, byteConnection, byteClose)
		}
	}
	dst.Write(byteCRLF)
}
