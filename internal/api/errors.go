package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidParams is returned for list requests outside page>=1, limit>=1.
var ErrInvalidParams = errors.New("invalid list parameters")

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// errorBody is the documented error payload. Message is a pointer because
// servers omit it or send null.
type errorBody struct {
	Message *string `json:"message"`
}

// decodeError builds an *Error from a response body of unknown shape.
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != nil {
		apiErr.Message = strings.TrimSpace(*eb.Message)
	}
	return apiErr
}

// MessageOf returns a user-facing message for err. It never panics on
// missing fields and falls back to the HTTP status text.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr != nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if text := http.StatusText(apiErr.Status); text != "" {
			return text
		}
		return "request failed"
	}
	return err.Error()
}

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr != nil && apiErr.Status == status
}
