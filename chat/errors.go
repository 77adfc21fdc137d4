package chat

import (
	"errors"
	"fmt"
)

// ErrFreeLLM is the root of the error family. Every typed error returned by
// this package unwraps to it, so callers can match the whole family with
// errors.Is(err, chat.ErrFreeLLM) and narrow with errors.As.
var ErrFreeLLM = errors.New("freellm")

// ValidationError reports request parameters that fail local constraints
// before any network activity.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request parameters: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrFreeLLM }

// ConnectionError reports a transport-level failure to establish or complete
// the connection.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to API: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return ErrFreeLLM }

// TimeoutError reports a request that exceeded the configured timeout.
type TimeoutError struct {
	Timeout string
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s: %v", e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error { return ErrFreeLLM }

// APIError reports an HTTP error status from the remote endpoint. Body holds
// the parsed error body when the endpoint returned JSON, nil otherwise;
// RawBody holds a truncated copy of the raw response text for diagnostics.
// Unexpected low-level failures are also wrapped as APIError so callers only
// ever handle the one family.
type APIError struct {
	StatusCode int
	Message    string
	Body       map[string]any
	RawBody    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API returned error status %d: %s", e.StatusCode, e.Message)
	}
	return "unexpected error during API request: " + e.Message
}

func (e *APIError) Unwrap() error { return ErrFreeLLM }
