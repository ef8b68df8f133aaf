package http1

import "github.com/pkg/errors"

// WriteSome transmits part of the serializer's output: at most one call to
// the stream's write primitive, so per-call work stays bounded and
// transport-level flow control keeps functioning. Returns the bytes
// accepted by the stream. A completed serializer returns (0, nil).
func WriteSome(dst SyncWriteStream, sr *Serializer) (int, error) {
	if sr.Done() {
		return 0, nil
	}
	frag, err := sr.Next()
	if err != nil {
		return 0, err
	}
	if frag == nil {
		return 0, nil
	}
	n, err := dst.WriteSome(frag)
	if n > 0 {
		if cerr := sr.Consume(n); cerr != nil {
			return n, cerr
		}
	}
	if err != nil {
		sr.fail(err)
		return n, errors.WithStack(err)
	}
	return n, nil
}

// WriteHeader transmits the message header only. The serializer is put in
// split mode so no body bytes share a fragment with the header; the rest of
// the message can be sent later with WriteSome or Write.
func WriteHeader(dst SyncWriteStream, sr *Serializer) (int, error) {
	sr.Split(true)
	var total int
	for !sr.HeaderDone() {
		n, err := WriteSome(dst, sr)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Write transmits the serializer's remaining output until the message is
// complete.
func Write(dst SyncWriteStream, sr *Serializer) (int, error) {
	var total int
	for !sr.Done() {
		n, err := WriteSome(dst, sr)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteMessage transmits a whole message through a private serializer with
// no chunk decorator. When transmission succeeds but the framing is
// close-delimited, the returned error is ErrEndOfStream: the message is on
// the wire, and the connection must now be closed instead of reused.
func WriteMessage(dst SyncWriteStream, msg *Message) (int, error) {
	sr, err := NewSerializer(msg)
	if err != nil {
		return 0, err
	}
	n, err := Write(dst, sr)
	if err != nil {
		return n, err
	}
	if sr.NeedsClose() {
		return n, errors.WithStack(ErrEndOfStream)
	}
	return n, nil
}
