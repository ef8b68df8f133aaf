package http1

import (
	"bytes"

	"github.com/pingcap/errors"
)

// Message is one HTTP/1 message to be serialized: a role flag, the
// start-line parts for that role, an ordered field list and an optional
// body. A message is read-only for the lifetime of one serialization pass.
type Message struct {
	// Request selects the request start-line (Method Target Proto) over
	// the response one (Proto StatusCode reason).
	Request bool

	Method []byte
	Target []byte

	StatusCode int

	// Proto defaults to HTTP/1.1 when nil.
	Proto []byte

	Header Header
	Body   Body
}

func NewRequest(method, target string) *Message {
	return &Message{
		Request: true,
		Method:  s2b(method),
		Target:  s2b(target),
	}
}

func NewResponse(statusCode int) *Message {
	return &Message{StatusCode: statusCode}
}

func (m *Message) proto() []byte {
	if len(m.Proto) == 0 {
		return byteHTTP11
	}
	return m.Proto
}

func (m *Message) isHTTP11() bool {
	return bytes.Equal(m.proto(), byteHTTP11)
}

func (m *Message) status() int {
	if m.StatusCode <= 0 {
		return StatusOK
	}
	return m.StatusCode
}

type framingMode int8

const (
	framingContentLength framingMode = iota
	framingChunked
	framingCloseDelimited
)

// framing derives the framing mode once per message: an explicit chunked
// transfer coding wins, then a known payload size, then chunked is
// auto-selected on HTTP/1.1, and everything else is delimited by closing
// the connection. The returned length is meaningful for content-length
// framing only.
func (m *Message) framing() (framingMode, int64, error) {
	te, err := transferEncodings(&m.Header)
	if err != nil {
		return 0, 0, err
	}
	if !m.Request && bodilessStatus(m.status()) {
		return framingContentLength, 0, nil
	}
	if chunked(te) {
		if !m.isHTTP11() {
			return 0, 0, errors.Errorf("chunked transfer encoding requires HTTP/1.1, got %q", m.proto())
		}
		return framingChunked, 0, nil
	}
	if n, ok, err := contentLengthField(&m.Header); err != nil {
		return 0, 0, err
	} else if ok {
		return framingContentLength, n, nil
	}
	if m.Body == nil {
		return framingContentLength, 0, nil
	}
	if sb, ok := m.Body.(SizedBody); ok && sb.Size() >= 0 {
		return framingContentLength, sb.Size(), nil
	}
	if m.isHTTP11() {
		return framingChunked, 0, nil
	}
	return framingCloseDelimited, 0, nil
}
