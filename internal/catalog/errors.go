package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingToken is returned when a listing fetch is attempted without a
// bearer token. No request is issued in that case.
var ErrMissingToken = errors.New("missing bearer token")

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Path      string
	Code      int
	RequestID string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// TransportError wraps a network level failure (refused connection, DNS,
// reset) that happened before any response was read.
type TransportError struct {
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("execute request: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a 2xx response whose body is not a product array.
type DecodeError struct {
	RequestID string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind classifies a fetch failure.
type Kind int

const (
	KindNone Kind = iota
	KindMissingCredential
	KindTransport
	KindServer
	KindDecode
	KindCanceled
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingCredential:
		return "missing-credential"
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by FetchProductListings to its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		statusErr    *StatusError
		transportErr *TransportError
		decodeErr    *DecodeError
	)
	switch {
	case errors.Is(err, ErrMissingToken):
		return KindMissingCredential
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &statusErr):
		return KindServer
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

// RequestID extracts the X-Request-ID attached to a failed request, if any.
func RequestID(err error) string {
	var (
		statusErr    *StatusError
		transportErr *TransportError
		decodeErr    *DecodeError
	)
	switch {
	case errors.As(err, &statusErr):
		return statusErr.RequestID
	case errors.As(err, &decodeErr):
		return decodeErr.RequestID
	case errors.As(err, &transportErr):
		return transportErr.RequestID
	}
	return ""
}
