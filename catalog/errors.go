package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a catalog failure.
type Kind int

const (
	// KindGeneric covers anything uncategorized, including bad
	// response bodies on an otherwise successful status.
	KindGeneric Kind = iota
	// KindValidation is bad caller input. Never retried.
	KindValidation
	// KindNetwork is a transport failure or timeout.
	KindNetwork
	// KindAPIResponse is a non-2xx upstream status.
	KindAPIResponse
	// KindRateLimit is an upstream 429.
	KindRateLimit
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindAPIResponse:
		return "api_response"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "generic"
	}
}

// Error is the terminal result of a failed catalog call.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int            // 0 unless KindAPIResponse or KindRateLimit
	Context    map[string]any // machine context (endpoint, query, ...)
	Timestamp  time.Time
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage translates the failure into display-ready guidance.
// Validation errors surface the original message since the caller can
// act on it.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindValidation:
		return e.Message
	case KindNetwork:
		return "Unable to reach the music service. Check your connection and try again."
	case KindRateLimit:
		return "Too many requests right now. Please wait a moment and try again."
	case KindAPIResponse:
		switch {
		case e.StatusCode == http.StatusNotFound:
			return "Nothing was found for that request."
		case e.StatusCode == http.StatusTooManyRequests:
			return "Too many requests right now. Please wait a moment and try again."
		case e.StatusCode >= http.StatusInternalServerError:
			return "The music service is having trouble. Please try again later."
		}
	}
	return "Something went wrong. Please try again."
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{
		Kind:      kind,
		Message:   msg,
		Timestamp: time.Now(),
		cause:     cause,
	}
}

func validationError(msg string) *Error {
	return newError(KindValidation, msg, nil)
}

func networkError(msg string, cause error) *Error {
	return newError(KindNetwork, msg, cause)
}

func apiResponseError(status int, msg string) *Error {
	kind := KindAPIResponse
	if status == http.StatusTooManyRequests {
		kind = KindRateLimit
	}
	e := newError(kind, msg, nil)
	e.StatusCode = status
	return e
}

func genericError(msg string, cause error) *Error {
	return newError(KindGeneric, msg, cause)
}

// kindOf returns the classified kind, or KindGeneric for errors that
// did not come out of this package.
func kindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindGeneric
}

func IsValidation(err error) bool { return kindOf(err) == KindValidation }
func IsNetwork(err error) bool    { return kindOf(err) == KindNetwork }
func IsRateLimit(err error) bool  { return kindOf(err) == KindRateLimit }

// IsAPIResponse reports whether err is a non-2xx upstream response,
// including rate limits.
func IsAPIResponse(err error) bool {
	k := kindOf(err)
	return k == KindAPIResponse || k == KindRateLimit
}

// UserMessage returns display-ready guidance for any error, falling
// back to the generic message for errors outside the taxonomy.
func UserMessage(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.UserMessage()
	}
	return "Something went wrong. Please try again."
}
