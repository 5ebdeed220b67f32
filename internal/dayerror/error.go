package dayerror

import "net/http"

// A DayError represents the error format that can be rendered by the daybook
// server. It serializes to the API wire shape `{"error": "message"}`.
type DayError struct {
	HTTPCode int    `json:"-"`
	Message  string `json:"error"`
}

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if derr, ok := err.(*DayError); ok && derr.HTTPCode != 0 {
		return derr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new DayError with the given message.
func New(message string) *DayError {
	return &DayError{Message: message}
}

// NewWithCode returns a new DayError with the given HTTP code and message.
func NewWithCode(code int, message string) *DayError {
	return &DayError{HTTPCode: code, Message: message}
}

// Error implements error interface.
func (e *DayError) Error() string {
	return e.Message
}
