package api

// =============================================================================
// Request Types
// =============================================================================

// ConvertRequest is the request body for converting a compose document.
type ConvertRequest struct {
	Compose string            `json:"compose"`
	Options ConvertOptions    `json:"options"`
	Env     map[string]string `json:"env,omitempty"`
}

// ConvertOptions mirrors the CLI flags.
type ConvertOptions struct {
	Command           string `json:"command,omitempty"`
	Rm                bool   `json:"rm,omitempty"`
	Detach            bool   `json:"detach,omitempty"`
	Multiline         bool   `json:"multiline,omitempty"`
	LongArgs          bool   `json:"long_args,omitempty"`
	ArgValueSeparator string `json:"arg_value_separator,omitempty"`
	Interpolate       bool   `json:"interpolate,omitempty"`
}

// =============================================================================
// Response Types
// =============================================================================

// ConvertResponse is the response for a conversion.
type ConvertResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Output    string            `json:"output"`
	Commands  []CommandResponse `json:"commands"`
	Variables []string          `json:"variables"`
}

// CommandResponse represents one generated command.
type CommandResponse struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Command string `json:"command"`
}

// ErrorResponse is the error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
