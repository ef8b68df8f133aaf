package http1

import "github.com/pkg/errors"

var (
	// ErrEndOfStream reports that a message was transmitted in full but its
	// framing requires the connection to close now. It is a completion
	// signal, not a transmission failure: the caller must stop writing
	// further messages on the connection and close it.
	ErrEndOfStream = errors.New("http1: end of stream")

	// ErrSerializerDone is returned when more output is requested from a
	// serializer that has already produced its complete message.
	ErrSerializerDone = errors.New("http1: serializer already complete")

	// ErrBodyExhausted is returned by a body source when its next chunk is
	// requested after the last one was taken.
	ErrBodyExhausted = errors.New("http1: body source exhausted")

	// ErrConsumeRange reports a Consume call exceeding the bytes remaining
	// in the pending fragment. The serializer is unusable afterwards.
	ErrConsumeRange = errors.New("http1: consume exceeds pending fragment")

	// ErrConcurrentWrite reports a second write started on a serializer
	// while another one is still in flight.
	ErrConcurrentWrite = errors.New("http1: serializer already has a write in flight")
)
