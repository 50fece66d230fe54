package classifier

import (
	"strings"
	"time"
)

// ErrorKind describes why an outbound probe produced no usable response.
type ErrorKind int

const (
	// ErrorKindNone means a response was received.
	ErrorKindNone ErrorKind = iota
	// ErrorKindDNS means the target host could not be resolved.
	ErrorKindDNS
	// ErrorKindRefused means the target actively refused the connection.
	ErrorKindRefused
	// ErrorKindTLS means the TLS handshake or certificate verification failed.
	ErrorKindTLS
	// ErrorKindNetwork covers any other transport level failure.
	ErrorKindNetwork
	// ErrorKindTimeout means no response arrived within the probe timeout.
	ErrorKindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindDNS:
		return "dns"
	case ErrorKindRefused:
		return "refused"
	case ErrorKindTLS:
		return "tls"
	case ErrorKindNetwork:
		return "network"
	case ErrorKindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Exchange is the outcome of a single outbound probe as seen by the classifier.
type Exchange struct {
	StatusCode  int
	ContentType string
	Body        []byte
	// Truncated is set when the body was cut at the read limit.
	Truncated bool
	Elapsed   time.Duration
	ErrKind   ErrorKind
	// ErrDetail is a short human readable reason for ErrKind.
	ErrDetail string
}

func (e *Exchange) normalizedContentType() string {
	return strings.ToLower(strings.TrimSpace(e.ContentType))
}

func (e *Exchange) normalizedBody() string {
	return strings.ToLower(strings.TrimSpace(string(e.Body)))
}
