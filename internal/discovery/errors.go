package discovery

import (
	"encoding/json"
	"fmt"
)

// HTTPError is a structured non-2xx reply from the search API.
type HTTPError struct {
	StatusCode  int
	Status      string
	Description string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("search API returned %d: %s", e.StatusCode, e.Description)
}

// QuotaError signals rate or quota exhaustion (HTTP 429 / RESOURCE_EXHAUSTED).
// The Message field carries the API's own wording and is surfaced verbatim.
type QuotaError struct {
	Message string
}

func (e *QuotaError) Error() string {
	return e.Message
}

// parseAPIError classifies a non-2xx reply into one of the closed fault kinds.
// Quota exhaustion is recognized first so a 429 never degrades to a plain
// HTTPError; everything else keeps the API's message when the body parses as
// the standard error envelope, or the raw body text when it does not.
func parseAPIError(statusCode int, body []byte) error {
	var envelope apiError
	message := string(body)
	status := ""
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
		status = envelope.Error.Status
	}

	if statusCode == 429 || status == "RESOURCE_EXHAUSTED" {
		return &QuotaError{Message: message}
	}

	return &HTTPError{
		StatusCode:  statusCode,
		Status:      status,
		Description: message,
	}
}
