package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionInvalidated is returned when the server rejected the
	// session's token. The session has already been cleared.
	ErrSessionInvalidated = errors.New("session invalidated")

	// ErrSuperseded is returned when a newer request with the same key
	// cancelled this one.
	ErrSuperseded = errors.New("request superseded")
)

const (
	connectivityMessage = "Cannot connect to server. Is your backend running?"
	invalidatedMessage  = "Your session has ended. Please log in again."
)

// APIError is a non-2xx response. Message is the server text verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// ConnectivityError means no response was received.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string { return connectivityMessage }

func (e *ConnectivityError) Unwrap() error { return e.Err }

// UnexpectedError covers failures that are neither a server response nor a
// transport failure, such as an undecodable body.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return "An unexpected error occurred: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// UserMessage renders err as the text a page shows.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	var connErr *ConnectivityError
	var unexpected *UnexpectedError
	switch {
	case errors.Is(err, ErrSessionInvalidated):
		return invalidatedMessage
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &connErr):
		return connErr.Error()
	case errors.As(err, &unexpected):
		return unexpected.Error()
	}
	return "An unexpected error occurred: " + err.Error()
}
