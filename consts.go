package http1

var (
	byteCRLF       = []byte("\r\n")
	byteColonSpace = []byte(": ")
	byteSP         = []byte(" ")
	byteHTTP11     = []byte("HTTP/1.1")
	byteChunked    = []byte("chunked")
	byteIdentity   = []byte("identity")
	byteClose      = []byte("close")
	byteZeroCRLF   = []byte("0\r\n")

	byteConnection       = []byte("Connection")
	byteContentLength    = []byte("Content-Length")
	byteTransferEncoding = []byte("Transfer-Encoding")
)

const (
	HeaderConnection       = "Connection"
	HeaderContentLength    = "Content-Length"
	HeaderTransferEncoding = "Transfer-Encoding"
)
