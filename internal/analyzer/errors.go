package analyzer

import "errors"

// Sentinel errors for analysis preconditions.
var (
	// ErrMissingCredential means no API credential was supplied for the call.
	ErrMissingCredential = errors.New("no API credential provided")

	// ErrDocumentTooShort means the extracted text is below the minimum
	// length accepted for analysis, usually an empty or unreadable file.
	ErrDocumentTooShort = errors.New("document is empty or could not be read")
)

// MalformedResponseError means the model response could not be parsed into an
// analysis record. The raw response is kept for diagnostics; no partial or
// guessed record is ever returned.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return "analysis response was not valid JSON, run the analysis again"
}
