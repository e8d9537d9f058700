package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	appErrors "drivebuddy-admin/pkg/errors"
)

// HTTPError is a non-2xx response from the backend data API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// IsStatus reports whether err wraps an HTTPError with the given status.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// errorMessage extracts the message the backend put in its error body.
// The body's "error" may be a string or an object with a "message".
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Error) > 0 {
		var s string
		if err := json.Unmarshal(eb.Error, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(eb.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return eb.Message
}

func upstreamError(statusCode int, body []byte) error {
	httpErr := &HTTPError{StatusCode: statusCode, Message: errorMessage(body)}

	msg := httpErr.Message
	if msg == "" {
		msg = fmt.Sprintf("Backend request failed with status %d", statusCode)
	}
	return appErrors.NewAppError(appErrors.CodeUpstream, msg, httpErr)
}

func networkError(err error) error {
	return appErrors.NewAppError(appErrors.CodeNetwork, "No response from backend. Please check your connection.", err)
}
