package transcode

import "errors"

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNoServices means the document declares no services; the output is empty.
	ErrNoServices = errors.New("document has no services")

	// ErrMalformedServices means "services" is not a map; the output is MalformedMarker.
	ErrMalformedServices = errors.New("services must be a map")

	// ErrInvalidSeparator is returned for an argument/value separator other than " " or "=".
	ErrInvalidSeparator = errors.New("arg-value separator must be \" \" or \"=\"")
)

// MalformedMarker is the whole output for a document whose services are not a map.
const MalformedMarker = "# invalid Docker Compose"
