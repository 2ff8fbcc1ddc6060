package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError is a failure to reach the backend or read its response.
type TransportError struct {
	Method  string
	URL     string
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// newAPIError picks the most useful message from an error response: the JSON
// "message" field, then the JSON "error" field, then the raw text body, then
// a generic message carrying the status code. Text bodies are used as sent.
func newAPIError(resp *Response) *APIError {
	body := string(resp.Body)
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: body}

	if resp.IsJSON() {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(resp.Body, &payload); err == nil {
			switch {
			case payload.Message != "":
				apiErr.Message = payload.Message
			case payload.Error != "":
				apiErr.Message = payload.Error
			}
		}
	} else if body != "" {
		apiErr.Message = body
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("API error (status %d)", resp.StatusCode)
	}
	return apiErr
}
