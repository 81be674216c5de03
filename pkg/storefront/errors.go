package storefront

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failed call into the taxonomy callers branch on.
// Raw transport status codes never escape the client.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation_error"
	KindServerError  Kind = "server_error"
	KindNetworkError Kind = "network_error"
	KindTimeout      Kind = "timeout"
	KindUnavailable  Kind = "unavailable"
	KindUnknown      Kind = "unknown"
)

// Error is the normalized failure every storefront call returns.
type Error struct {
	Kind    Kind
	Message string
	// Details carries server-side validation messages when present.
	Details []string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the Kind from an error, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// kindForStatus maps a non-2xx HTTP status to the taxonomy.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusServiceUnavailable:
		return KindUnavailable
	case status >= 500:
		return KindServerError
	default:
		return KindUnknown
	}
}

// classifyTransport distinguishes timeouts from other transport failures.
// Timeouts are not retried; network errors are.
func classifyTransport(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetworkError
}
