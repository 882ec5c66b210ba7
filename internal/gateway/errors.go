package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated is returned when no session token is stored. The
// request fails before any network I/O happens.
var ErrUnauthenticated = errors.New("not authenticated: no session token stored")

// ErrNotFound matches an HTTPError with status 404 via errors.Is.
var ErrNotFound = errors.New("resource not found")

// HTTPError is a response with a status outside 200-299. The body is kept
// for logging but is never parsed as success data.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned HTTP %d", e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// NetworkError is a transport-level failure: DNS, connection refused,
// timeout. The request may never have reached the backend.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a backend-reported failure: a success:false envelope
// delivered with a 2xx status.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend rejected request: %s", e.Message)
}
