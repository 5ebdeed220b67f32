package libday

import (
	"encoding/json"
	"io"
	"strings"
)

// An APIError represents an HTTP error returned by a daybook server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

// parseAPIError decodes the flat `{"error": "..."}` body.
// When the body does not follow the wire shape, the raw text is kept
// so the caller still sees what the server said.
func parseAPIError(r io.Reader, code int) error {
	apierr := &APIError{StatusCode: code}

	raw, err := io.ReadAll(r)
	if err != nil {
		return apierr
	}

	if err := json.Unmarshal(raw, apierr); err != nil || apierr.Message == "" {
		apierr.Message = strings.TrimSpace(string(raw))
	}
	return apierr
}

func (e *APIError) Error() string {
	return e.Message
}
