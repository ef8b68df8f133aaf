package http1

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"github.com/pingcap/errors"
)

func b2s(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

func s2b(s string) (b []byte) {
	x := (*[2]uintptr)(unsafe.Pointer(&s))
	h := [3]uintptr{x[0], x[1], x[1]}
	return *(*[]byte)(unsafe.Pointer(&h))
}

func appendLine(dst, key, value []byte) []byte {
	dst = append(dst, key...)
	dst = append(dst, byteColonSpace...)
	dst = append(dst, value...)
	return append(dst, byteCRLF...)
}

// eqFold compares a field name against a canonical name, ASCII
// case-insensitively.
func eqFold(b []byte, s string) bool {
	return len(b) == len(s) && strings.EqualFold(b2s(b), s)
}

// transferEncodings extracts the transfer codings listed by the message
// fields. "identity" is not recorded; anything other than a single trailing
// "chunked" coding is rejected.
func transferEncodings(h *Header) ([][]byte, error) {
	values := h.Values(HeaderTransferEncoding)
	if len(values) == 0 {
		return nil, nil
	}
	var tr [][]byte
	for _, value := range values {
		for _, encoding := range bytes.Split(value, []byte(",")) {
			encoding = bytes.TrimSpace(encoding)
			if len(encoding) == 0 || bytes.Equal(encoding, byteIdentity) {
				continue
			}
			if !bytes.Equal(encoding, byteChunked) {
				return nil, errors.Errorf("unsupported transfer encoding: %q", encoding)
			}
			tr = append(tr, encoding)
		}
	}
	if len(tr) > 1 {
		return nil, errors.Errorf("too many transfer encodings")
	}
	return tr, nil
}

func chunked(te [][]byte) bool {
	return len(te) > 0 && bytes.Equal(te[0], byteChunked)
}

// contentLengthField returns the length declared by the message fields, if
// any. Multiple Content-Length fields are only allowed when they agree.
func contentLengthField(h *Header) (int64, bool, error) {
	values := h.Values(HeaderContentLength)
	if len(values) == 0 {
		return 0, false, nil
	}
	first := bytes.TrimSpace(values[0])
	for _, v := range values[1:] {
		if !bytes.Equal(first, bytes.TrimSpace(v)) {
			return 0, false, errors.Errorf("message cannot contain multiple Content-Length headers; got %q", values)
		}
	}
	n, err := parseContentLength(first)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func parseContentLength(cl []byte) (int64, error) {
	cl = bytes.TrimSpace(cl)
	if len(cl) == 0 {
		return 0, errors.Errorf("empty Content-Length")
	}
	n, err := strconv.ParseInt(b2s(cl), 10, 64)
	if err != nil || n < 0 {
		return 0, errors.Errorf("bad Content-Length %s", cl)
	}
	return n, nil
}

var bufPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 4096)
	},
}
