package ses

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned by every Client call. Status is the HTTP status code
// of a non-2xx response, or 0 when the request never produced a usable
// response (transport failure, encoding or decoding error).
type APIError struct {
	Status  int
	Message string
	Body    string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newStatusError(status int, body string) *APIError {
	return &APIError{
		Status:  status,
		Message: fmt.Sprintf("HTTP error! status: %d, message: %s", status, body),
		Body:    body,
	}
}

func newNetworkError(err error) *APIError {
	return &APIError{
		Status:  0,
		Message: fmt.Sprintf("network error: %v", err),
		Err:     err,
	}
}

// StatusCode returns the HTTP status carried by err, 0 when err is not an
// APIError or has no status.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
