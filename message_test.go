package http1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderOrderAndLookup(t *testing.T) {
	var h Header
	h.Add("X-A", "1")
	h.Add("x-b", "2")
	h.Add("X-A", "3")

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "1", string(h.Get("x-a")))
	assert.Equal(t, [][]byte{[]byte("1"), []byte("3")}, h.Values("X-A"))
	assert.True(t, h.Has("X-B"))

	h.Set("X-A", "9")
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "9", string(h.Get("X-A")))
	// Set keeps the first occurrence's position
	assert.Equal(t, "X-A", string(h.Fields()[0].Name))

	h.Del("x-a")
	assert.False(t, h.Has("X-A"))
	assert.Equal(t, 1, h.Len())

	assert.Equal(t, "x-b: 2\r\n", h.String())
}

func TestFramingDecision(t *testing.T) {
	t.Run("will reject chunked on HTTP/1.0", func(t *testing.T) {
		msg := NewResponse(StatusOK)
		msg.Proto = []byte("HTTP/1.0")
		msg.Header.Add(HeaderTransferEncoding, "chunked")
		msg.Body = NewChunksBody([]byte("x"))

		_, err := NewSerializer(msg)
		assert.Error(t, err)
	})

	t.Run("will reject unknown transfer encodings", func(t *testing.T) {
		msg := NewResponse(StatusOK)
		msg.Header.Add(HeaderTransferEncoding, "gzip")

		_, err := NewSerializer(msg)
		assert.Error(t, err)
	})

	t.Run("will reject conflicting Content-Length fields", func(t *testing.T) {
		msg := NewResponse(StatusOK)
		msg.Header.Add(HeaderContentLength, "5")
		msg.Header.Add(HeaderContentLength, "6")

		_, err := NewSerializer(msg)
		assert.Error(t, err)
	})

	t.Run("will accept agreeing Content-Length fields", func(t *testing.T) {
		msg := NewResponse(StatusOK)
		msg.Header.Add(HeaderContentLength, "5")
		msg.Header.Add(HeaderContentLength, "5")
		msg.Body = NewBytesBody([]byte("12345"))

		dst := &recordStream{}
		_, err := WriteMessage(dst, msg)
		require.NoError(t, err)

		head, _ := splitHead(t, dst.buf.Bytes())
		assert.Equal(t, 1, bytes.Count(head, []byte("Content-Length:")))
	})

	t.Run("will reject a negative Content-Length", func(t *testing.T) {
		msg := NewResponse(StatusOK)
		msg.Header.Add(HeaderContentLength, "-1")

		_, err := NewSerializer(msg)
		assert.Error(t, err)
	})
}

func TestBodilessStatuses(t *testing.T) {
	t.Run("will drop body and length for 204", func(t *testing.T) {
		msg := NewResponse(StatusNoContent)
		msg.Body = NewBytesBody([]byte("must not appear"))

		dst := &recordStream{}
		_, err := WriteMessage(dst, msg)
		require.NoError(t, err)

		assert.Equal(t, "HTTP/1.1 204 No Content\r\n\r\n", dst.buf.String())
	})

	t.Run("will drop body for 304", func(t *testing.T) {
		msg := NewResponse(StatusNotModified)
		msg.Body = NewBytesBody([]byte("nope"))

		dst := &recordStream{}
		_, err := WriteMessage(dst, msg)
		require.NoError(t, err)

		_, body := splitHead(t, dst.buf.Bytes())
		assert.Empty(t, body)
	})
}

func TestRequestFraming(t *testing.T) {
	t.Run("will omit Content-Length on a bodyless request", func(t *testing.T) {
		msg := NewRequest("GET", "/")
		msg.Header.Add("Host", "example.test")

		dst := &recordStream{}
		_, err := WriteMessage(dst, msg)
		require.NoError(t, err)

		assert.Equal(t, "GET / HTTP/1.1\r\nHost: example.test\r\n\r\n", dst.buf.String())
	})

	t.Run("will keep an explicit zero Content-Length on a request", func(t *testing.T) {
		msg := NewRequest("POST", "/ping")
		msg.Header.Add("Host", "example.test")
		msg.Header.Add(HeaderContentLength, "0")

		dst := &recordStream{}
		_, err := WriteMessage(dst, msg)
		require.NoError(t, err)

		assert.Equal(t, "POST /ping HTTP/1.1\r\nHost: example.test\r\nContent-Length: 0\r\n\r\n",
			dst.buf.String())
	})

	t.Run("will emit Content-Length for a sized request body", func(t *testing.T) {
		msg := NewRequest("POST", "/upload")
		msg.Header.Add("Host", "example.test")
		msg.Body = NewBytesBody([]byte("payload"))

		dst := &recordStream{}
		_, err := WriteMessage(dst, msg)
		require.NoError(t, err)

		head, body := splitHead(t, dst.buf.Bytes())
		assert.Contains(t, string(head), "Content-Length: 7\r\n")
		assert.Equal(t, "payload", string(body))
	})
}

func TestBodySources(t *testing.T) {
	t.Run("bytes body yields once", func(t *testing.T) {
		b := NewBytesBody([]byte("x"))
		require.True(t, b.More())
		c, err := b.Next()
		require.NoError(t, err)
		assert.Equal(t, "x", string(c))
		assert.False(t, b.More())

		_, err = b.Next()
		assert.ErrorIs(t, err, ErrBodyExhausted)
	})

	t.Run("chunks body knows its total size", func(t *testing.T) {
		b := NewChunksBody([]byte("ab"), []byte("cde"))
		assert.Equal(t, int64(5), b.Size())
	})

	t.Run("empty bytes body is exhausted from the start", func(t *testing.T) {
		b := NewBytesBody(nil)
		assert.False(t, b.More())
		assert.Equal(t, int64(0), b.Size())
	})

	t.Run("reader body releases its read buffer at EOF", func(t *testing.T) {
		b := NewReaderBody(strings.NewReader("x"))
		require.True(t, b.More())
		c, err := b.Next()
		require.NoError(t, err)

		// probing for more data must not invalidate the last span and
		// must hand the idle read buffer back to the pool
		assert.False(t, b.More())
		assert.Equal(t, "x", string(c))
		assert.Nil(t, b.cur)
	})

	t.Run("sized reader body frames with a content length", func(t *testing.T) {
		msg := NewResponse(StatusOK)
		msg.Body = NewSizedReaderBody(strings.NewReader("12345"), 5)

		dst := &recordStream{}
		_, err := WriteMessage(dst, msg)
		require.NoError(t, err)

		head, body := splitHead(t, dst.buf.Bytes())
		assert.Contains(t, string(head), "Content-Length: 5\r\n")
		assert.Equal(t, "12345", string(body))
	})
}
