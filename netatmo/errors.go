package netatmo

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Netatmo client.
var (
	// ErrClientConsumed indicates Authenticate was called on a client that already authenticated.
	ErrClientConsumed = errors.New("netatmo: unauthenticated client already consumed")
	// ErrEmptyScopes indicates Authenticate was called without any scope.
	ErrEmptyScopes = errors.New("netatmo: at least one scope is required")
	// ErrUnknownScope indicates a scope string that has no Scope variant.
	ErrUnknownScope = errors.New("netatmo: unknown scope")

	ErrEmptyDeviceID = errors.New("netatmo: device ID cannot be empty")
	ErrEmptyHomeID   = errors.New("netatmo: home ID cannot be empty")
	ErrEmptyRoomID   = errors.New("netatmo: room ID cannot be empty")
)

// ErrorKind is the closed set of failure classes callers switch on.
type ErrorKind int

const (
	// KindUnknown is never produced by the client; it is returned by KindOf for foreign errors.
	KindUnknown ErrorKind = iota
	// KindFailedToSendRequest indicates a transport-level send failure.
	KindFailedToSendRequest
	// KindFailedToReadResponse indicates the response body could not be read.
	KindFailedToReadResponse
	// KindJSONDeserializationFailed indicates the body is not valid JSON for the expected type.
	KindJSONDeserializationFailed
	// KindAuthenticationFailed wraps any failure of Authenticate.
	KindAuthenticationFailed
	// KindAPICallFailed attributes a failure to a named operation. When produced
	// by the status classifier it carries the vendor error code and message.
	KindAPICallFailed
	// KindUnknownAPICallFailure indicates an unrecognized status, or a recognized
	// error status whose body is not a structured API error.
	KindUnknownAPICallFailure
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindFailedToSendRequest:
		return "FailedToSendRequest"
	case KindFailedToReadResponse:
		return "FailedToReadResponse"
	case KindJSONDeserializationFailed:
		return "JsonDeserializationFailed"
	case KindAuthenticationFailed:
		return "AuthenticationFailed"
	case KindAPICallFailed:
		return "ApiCallFailed"
	case KindUnknownAPICallFailure:
		return "UnknownApiCallFailure"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by every client operation.
//
// Kind is the dispatch key. Name, Code, Message and StatusCode are populated
// depending on the kind. Err holds the underlying cause, if any.
type Error struct {
	Kind ErrorKind
	// Name is the operation the failure is attributed to (e.g. "get_measure").
	Name string
	// Code and Message are the vendor's own error code and message.
	Code    int
	Message string
	// StatusCode is the HTTP status for KindUnknownAPICallFailure.
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindFailedToSendRequest:
		msg = "failed to send request"
	case KindFailedToReadResponse:
		msg = "failed to read response"
	case KindJSONDeserializationFailed:
		msg = "failed to deserialize JSON"
	case KindAuthenticationFailed:
		msg = "failed to authenticate"
	case KindAPICallFailed:
		if e.Message != "" || e.Code != 0 {
			msg = fmt.Sprintf("API call '%s' failed: code %d: %s", e.Name, e.Code, e.Message)
		} else {
			msg = fmt.Sprintf("API call '%s' failed", e.Name)
		}
	case KindUnknownAPICallFailure:
		msg = fmt.Sprintf("API call '%s' failed with unexpected status %d", e.Name, e.StatusCode)
	default:
		msg = "unknown error"
	}

	if e.Err != nil {
		return fmt.Sprintf("netatmo: %s: %v", msg, e.Err)
	}
	return "netatmo: " + msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized returns true if the vendor rejected the access token.
// Netatmo reports invalid (2) and expired (3) tokens with these codes.
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindAPICallFailed && (e.Code == 2 || e.Code == 3)
}

// KindOf returns the kind of the outermost *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HasKind reports whether any *Error in err's chain has the given kind.
func HasKind(err error, kind ErrorKind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// AsAPIError returns the classifier-produced error carrying the vendor code
// and message, if err's chain contains one.
func AsAPIError(err error) (*Error, bool) {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return nil, false
		}
		if e.Kind == KindAPICallFailed && (e.Code != 0 || e.Message != "") {
			return e, true
		}
		err = e.Err
	}
	return nil, false
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// attribute wraps a failure with the operation it belongs to. Failures the
// classifier already attributed are returned unchanged.
func attribute(name string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Name == name &&
		(e.Kind == KindAPICallFailed || e.Kind == KindUnknownAPICallFailure) {
		return err
	}
	return &Error{Kind: KindAPICallFailed, Name: name, Err: err}
}
