// Package validation provides pure validation functions for API handlers.
//
// All functions are pure (no I/O, no side effects). They report the first
// offending field together with a message suitable for a 400 response.
//
// # Functions
//
//   - ValidateConvertFields: Validate required fields of a convert request
//   - ValidateEnv: Check interpolation environment entries
//   - CanInterpolate: Check whether supplied env values will be used
//
// # Usage
//
//	if field, msg := validation.ValidateConvertFields(compose, separator); field != "" {
//	    // Return 400 Bad Request with msg
//	}
package validation
