package gateway

import "fmt"

type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindUnauthorized       ErrorKind = "UNAUTHORIZED"
	KindValidation         ErrorKind = "VALIDATION_ERROR"
	KindServer             ErrorKind = "SERVER_ERROR"
	KindNetwork            ErrorKind = "NETWORK_ERROR"
)

// Error is the uniform shape every failed dispatch is normalized into.
// HTTPStatus is zero when no response was received.
type Error struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int
}

func (e *Error) Error() string {
	if e.HTTPStatus == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.HTTPStatus, e.Message)
}

// Classify maps a non-2xx response status to its error kind and reports
// whether the session must be torn down. It is a pure function so the
// interceptor side effect stays testable apart from any transport.
func Classify(status int) (ErrorKind, bool) {
	switch {
	case status == 401:
		return KindUnauthorized, true
	case status >= 500:
		return KindServer, false
	default:
		return KindValidation, false
	}
}

// KindOf extracts the error kind from any error returned by the gateway,
// defaulting to NETWORK_ERROR for errors it did not produce.
func KindOf(err error) ErrorKind {
	if gerr, ok := err.(*Error); ok {
		return gerr.Kind
	}
	return KindNetwork
}
