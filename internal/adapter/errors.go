package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the backend rejects the API key.
	ErrUnauthorized = errors.New("client unauthorized")
)

// ResponseError is a non-2xx backend response. The sync error classifier
// consumes the raw status code and body, so the adapter never collapses a
// status into a bare sentinel; 401 wraps [ErrUnauthorized] around it.
type ResponseError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Body is the trimmed response body.
	Body string
	// Version is the Last-Modified-Version header value, when present.
	Version int64
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}
