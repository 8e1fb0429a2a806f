package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors.
var (
	ErrNoCredential = errors.New("no session token")
	ErrReadOnly     = errors.New("store is in read-only mode")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPError is returned when the API answers with a non-success status.
type HTTPError struct {
	Method  string
	URL     string
	Status  int
	Message string // "error" field of the response body, if any
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

// Is reports 401 responses as ErrUnauthorized and 404 responses as ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// TransportError wraps failures that happened before a response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Status
	}
	return 0
}

// UserMessage returns the text worth showing to a person for err.
// Server supplied messages win over the generic error string.
func UserMessage(err error) string {
	var herr *HTTPError
	if errors.As(err, &herr) && herr.Message != "" {
		return herr.Message
	}
	return err.Error()
}
