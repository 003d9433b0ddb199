package topstats

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Common errors returned by the topstats client before any network I/O.
var (
	// ErrMissingToken is returned when a client is constructed without a token.
	ErrMissingToken = errors.New("an API token is required")

	// ErrClientClosed is returned by every operation after Close has been called.
	ErrClientClosed = errors.New("client is closed")

	// ErrInvalidBotID is returned when a bot ID is zero or negative.
	ErrInvalidBotID = errors.New("bot ID must be a positive integer")

	// ErrNoSearchCriteria is returned by SearchBots when neither a name nor a
	// tag is given.
	ErrNoSearchCriteria = errors.New("either a bot name or tag must be specified")

	// ErrCompareArity is returned when a compare operation receives fewer than
	// 2 or more than 4 unique bot IDs.
	ErrCompareArity = errors.New("expected 2 to 4 unique bot IDs to compare")
)

// RequestError reports a failed request. StatusCode is the HTTP status for
// remote failures and zero for transport-level failures, in which case Err
// holds the underlying cause.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("topstats: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("topstats: got %d: %s", e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the service answered 404.
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the token was rejected.
func (e *RequestError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// RatelimitError reports that the service throttled the request. The client
// never retries on its own; RetryAfter is the service's hint for when the
// caller may try again.
type RatelimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RatelimitError) Error() string {
	return fmt.Sprintf("topstats: ratelimited, retry in %s", e.RetryAfter)
}
