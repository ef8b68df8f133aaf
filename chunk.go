package http1

import "strconv"

// ChunkDecorator injects chunk extensions and trailer fields into chunked
// output. It is consulted once per data chunk and once for the terminator;
// the serializer keeps no state in it.
type ChunkDecorator interface {
	// ChunkExtension returns the extension text to place after the size of
	// the index-th chunk, e.g. ";name=value". No CRLF, may be nil.
	ChunkExtension(index int, chunk []byte) []byte
	// Trailer returns the CRLF-terminated trailer field lines emitted
	// after the terminating zero-size chunk. May be nil.
	Trailer() []byte
}

// appendChunkHeader appends the chunk size line: lowercase hex length, the
// optional extension text, CRLF. The data and its trailing CRLF are framed
// by the caller so payload bytes stay uncopied.
func appendChunkHeader(dst []byte, size int, ext []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(size), 16)
	dst = append(dst, ext...)
	return append(dst, byteCRLF...)
}

// appendFinalChunk appends the terminator: the literal zero-size chunk,
// any trailer field lines, and the closing CRLF.
func appendFinalChunk(dst []byte, trailer []byte) []byte {
	dst = append(dst, byteZeroCRLF...)
	dst = append(dst, trailer...)
	return append(dst, byteCRLF...)
}
