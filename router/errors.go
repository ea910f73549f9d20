package router

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Causes of routing failures.
var (
	ErrNoProvider          = errors.New("No provider available")
	ErrProviderUnsupported = errors.New("Provider is expected to implement either send or sendAsync method.")
)

// RoutingError is returned synchronously by Dispatch when a wallet method
// cannot be routed. The call never started and the callback is never invoked.
type RoutingError struct {
	Method string
	Cause  error
}

func (e *RoutingError) Error() string {
	if errors.Is(e.Cause, ErrProviderUnsupported) {
		return e.Cause.Error()
	}

	return fmt.Sprintf("%v for method: %s", e.Cause, e.Method)
}

func (e *RoutingError) Unwrap() error {
	return e.Cause
}

// HTTPError is a non 2xx response from the remote node, after retries exhausted.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Node: %s, Method: %s, Status: %s", e.URL, e.Method, e.Status)
}

// ServerError is a structured error payload returned by the remote node in a
// failed HTTP response. It supersedes the HTTPError it was recovered from.
type ServerError struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *ServerError) Error() string {
	return string(e.Payload)
}

// Decode unmarshals the server payload into v.
func (e *ServerError) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// recoverServerError replaces an HTTPError with the server provided payload
// when the response body is valid JSON. Any other error is returned as is.
func recoverServerError(err error) error {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	var payload json.RawMessage
	if jsonErr := json.Unmarshal(httpErr.Body, &payload); jsonErr != nil {
		return httpErr
	}

	return &ServerError{
		StatusCode: httpErr.StatusCode,
		Payload:    payload,
	}
}
