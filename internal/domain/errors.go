package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when required configuration, such as the API key, is missing.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidArgument is returned for malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")
)

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("API error: %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// TransportError wraps a failure to complete the request at all.
type TransportError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("API request to %s timed out: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("API request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
