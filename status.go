package http1

import "fmt"

const (
	StatusContinue            = 100
	StatusSwitchingProtocols  = 101
	StatusOK                  = 200
	StatusCreated             = 201
	StatusAccepted            = 202
	StatusNoContent           = 204
	StatusMovedPermanently    = 301
	StatusFound               = 302
	StatusNotModified         = 304
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusRequestTimeout      = 408
	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
)

func reason(statusCode int) string {
	switch statusCode {
	case StatusContinue:
		return "Continue"
	case StatusSwitchingProtocols:
		return "Switching Protocols"
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Created"
	case StatusAccepted:
		return "Accepted"
	case StatusNoContent:
		return "No Content"
	case StatusMovedPermanently:
		return "Moved Permanently"
	case StatusFound:
		return "Found"
	case StatusNotModified:
		return "Not Modified"
	case StatusBadRequest:
		return "Bad Request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Not Found"
	case StatusRequestTimeout:
		return "Request Timeout"
	case StatusInternalServerError:
		return "Internal Server Error"
	case StatusNotImplemented:
		return "Not Implemented"
	case StatusBadGateway:
		return "Bad Gateway"
	case StatusServiceUnavailable:
		return "Service Unavailable"
	}
	return "Unknown Status Code"
}

var statusLineCache = map[int][]byte{}

func init() {
	for _, code := range []int{
		StatusOK, StatusCreated, StatusNoContent,
		StatusMovedPermanently, StatusFound, StatusNotModified,
		StatusBadRequest, StatusForbidden, StatusNotFound,
		StatusInternalServerError, StatusBadGateway, StatusServiceUnavailable,
	} {
		statusLineCache[code] = []byte(fmt.Sprintf("HTTP/1.1 %d %s\r\n", code, reason(code)))
	}
}

// statusLine returns the full HTTP/1.1 status line for statusCode,
// terminating CRLF included.
func statusLine(statusCode int) []byte {
	if b := statusLineCache[statusCode]; len(b) > 0 {
		return b
	}
	return []byte(fmt.Sprintf("HTTP/1.1 %d %s\r\n", statusCode, reason(statusCode)))
}

// bodilessStatus reports whether a response with this status never carries
// a body regardless of what the message holds.
func bodilessStatus(statusCode int) bool {
	return statusCode/100 == 1 || statusCode == StatusNoContent || statusCode == StatusNotModified
}
