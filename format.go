package http1

import "io"

// Diagnostic text formatting. A private serializer is run to completion
// against the sink, so chunked framing is applied automatically whenever
// the message requires it. Formatting drains the body source: a message
// can be formatted or transmitted, not both.

// WriteTo serializes the whole message into w.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	sr, err := NewSerializer(m)
	if err != nil {
		return 0, err
	}
	n, err := Write(NewStream(w), sr)
	return int64(n), err
}

// WriteHeaderTo serializes the start-line and header fields into w, body
// excluded.
func (m *Message) WriteHeaderTo(w io.Writer) (int64, error) {
	sr, err := NewSerializer(m)
	if err != nil {
		return 0, err
	}
	n, err := WriteHeader(NewStream(w), sr)
	return int64(n), err
}

// String renders the message for diagnostics. On a mid-pass error the
// output rendered so far is returned.
func (m *Message) String() string {
	buf := headBufPool.Get()
	defer headBufPool.Put(buf)
	m.WriteTo(buf)
	return string(buf.B)
}
