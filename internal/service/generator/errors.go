package generator

import "errors"

// ErrInvalidInput marks a request with no usable input.
var ErrInvalidInput = errors.New("either text content or files are required")

// ErrUpstreamUnavailable marks a missing credential or a transport failure
// reaching the model API.
var ErrUpstreamUnavailable = errors.New("upstream model API unavailable")

// UpstreamError carries the message of a non-success model API response.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return "OpenAI API error: " + e.Message
}
