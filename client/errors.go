package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the wikipath API.
// StatusCode is zero for errors reported on a stream.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("wikipath: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("wikipath: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func asAPIError(err error) (*APIError, bool) {
	var e *APIError
	ok := errors.As(err, &e)
	return e, ok
}

// IsNotFound reports whether an article or title does not exist.
func IsNotFound(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.Code == "not_found"
}

// IsNoPath reports whether the destination is unreachable from the source.
func IsNoPath(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.Code == "no_path"
}

// IsAmbiguous reports whether a title matched more than one article.
func IsAmbiguous(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.Code == "ambiguous_title"
}

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.StatusCode == http.StatusTooManyRequests
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
