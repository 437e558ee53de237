package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// User-facing messages for upstream failures.
const (
	MessageNetwork        = "Network error. Please check your connection and try again."
	MessageSessionExpired = "Your session has expired. Please log in again."
	MessageForbidden      = "You do not have permission to perform this action."
	MessageNotFound       = "The requested record could not be found."
	MessageServer         = "The server encountered an error. Please try again later."
	MessageUnexpected     = "An unexpected error occurred. Please try again."
)

// NetworkError means no HTTP response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a response outside the 2xx range.
type HTTPError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %d %s", e.Status, e.StatusText)
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StatusOf returns the upstream status code carried by err, or 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// UserMessage maps an upstream failure to the text shown in a toast.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsNetwork(err) {
		return MessageNetwork
	}
	switch StatusOf(err) {
	case http.StatusUnauthorized:
		return MessageSessionExpired
	case http.StatusForbidden:
		return MessageForbidden
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusInternalServerError:
		return MessageServer
	default:
		return MessageUnexpected
	}
}
