package models

// ImportErrorKind classifies an import failure so downstream handling can be
// exhaustive instead of probing untyped error shapes.
type ImportErrorKind string

const (
	// ImportErrorValidation covers client-side failures detected before any
	// network call: missing credential, unparsable input, zero valid records.
	ImportErrorValidation ImportErrorKind = "validation"
	// ImportErrorTransport covers network-level failures reaching the backend.
	ImportErrorTransport ImportErrorKind = "transport"
	// ImportErrorBackend covers non-2xx responses from the backend, carrying
	// the backend's message when one is present.
	ImportErrorBackend ImportErrorKind = "backend"
)

// ImportError is the structured error type for every failure the import and
// report operations can produce. All errors are terminal for the operation
// that produced them; nothing is retried automatically.
type ImportError struct {
	Kind    ImportErrorKind `json:"kind"`
	Message string          `json:"message"`
}

func (e *ImportError) Error() string {
	return e.Message
}

// NewValidationError builds a validation-kind ImportError.
func NewValidationError(message string) *ImportError {
	return &ImportError{Kind: ImportErrorValidation, Message: message}
}

// NewTransportError builds a transport-kind ImportError.
func NewTransportError(message string) *ImportError {
	return &ImportError{Kind: ImportErrorTransport, Message: message}
}

// NewBackendError builds a backend-kind ImportError.
func NewBackendError(message string) *ImportError {
	return &ImportError{Kind: ImportErrorBackend, Message: message}
}

// ImportResult is the outcome of one import submission. Both import modes
// converge on this shape so result rendering is mode-independent. Books may
// carry the server's echo of each created record.
type ImportResult struct {
	Imported int          `json:"imported"`
	Total    int          `json:"total"`
	Errors   []string     `json:"errors"`
	Books    []BookRecord `json:"books"`
}

// ImportPreview is the outcome of a dry-run parse of a CSV document: the
// normalized records that would be submitted plus how many rows the
// inclusion filter dropped. No network call is involved.
type ImportPreview struct {
	Records []BookRecord `json:"records"`
	Total   int          `json:"total"`
	Skipped int          `json:"skipped"`
}
