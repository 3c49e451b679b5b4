package llm

import "fmt"

// CapabilityError indicates the completion endpoint could not serve the
// request. StatusCode is 0 for network-level failures.
type CapabilityError struct {
	StatusCode int
	Message    string
}

func (e *CapabilityError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("analysis service unavailable: %s", e.Message)
	}
	return fmt.Sprintf("analysis service error (status %d): %s", e.StatusCode, e.Message)
}

// newStatusError builds a CapabilityError from a non-200 response.
// The body is truncated so upstream error text cannot flood logs.
func newStatusError(statusCode int, body []byte) *CapabilityError {
	msg := string(body)
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return &CapabilityError{StatusCode: statusCode, Message: msg}
}
