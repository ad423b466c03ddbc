package validation

import (
	"fmt"
	"strings"

	"github.com/artpar/decomposer/internal/core/transcode"
)

// =============================================================================
// Convert Request Validation Functions
// =============================================================================

// ValidateConvertFields validates the fields of a convert request.
// Returns the field name and error message if validation fails.
// Returns empty strings if all fields are valid.
//
// Example:
//
//	field, msg := ValidateConvertFields("services:\n  web:\n    image: nginx\n", "=")
//	if field != "" {
//	    // Handle validation error
//	}
func ValidateConvertFields(composeDoc, separator string) (field, message string) {
	if strings.TrimSpace(composeDoc) == "" {
		return "compose", "compose is required"
	}
	if _, err := transcode.ParseSeparator(separator); err != nil {
		return "options.arg_value_separator", `arg_value_separator must be " " or "="`
	}
	return "", ""
}

// ValidateEnv checks interpolation variables.
// Names must be non-empty and must not contain '=' or whitespace.
func ValidateEnv(env map[string]string) (field, message string) {
	for name := range env {
		if name == "" || strings.ContainsAny(name, "= \t\n") {
			return "env", fmt.Sprintf("invalid variable name %q", name)
		}
	}
	return "", ""
}

// CanInterpolate checks if supplied env values will take effect.
// Env values are only consulted when interpolation is enabled.
//
// Example:
//
//	allowed, reason := CanInterpolate(opts.Interpolate, len(req.Env))
//	if !allowed {
//	    // Return 400 Bad Request with reason
//	}
func CanInterpolate(interpolate bool, envCount int) (allowed bool, reason string) {
	if envCount > 0 && !interpolate {
		return false, "env is only used when options.interpolate is true"
	}
	return true, ""
}
