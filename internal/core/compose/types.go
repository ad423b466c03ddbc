package compose

// =============================================================================
// Load Options
// =============================================================================

// LookupFunc resolves a variable name for interpolation.
type LookupFunc func(name string) (string, bool)

// Options controls how Load builds the canonical document.
type Options struct {
	// Interpolate enables ${VAR} substitution in string values.
	Interpolate bool

	// Lookup resolves variables when Interpolate is set.
	// A nil Lookup resolves nothing, so ${VAR:-default} yields its default.
	Lookup LookupFunc
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(vars map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// =============================================================================
// Legacy Schema Keys
// =============================================================================

// legacyServiceKeys maps compose v2 service keys to their location in the
// common specification.
var legacyServiceKeys = map[string][]string{
	"net":             {"network_mode"},
	"mem_limit":       {"deploy", "resources", "limits", "memory"},
	"mem_reservation": {"deploy", "resources", "reservations", "memory"},
	"cpus":            {"deploy", "resources", "limits", "cpus"},
	"pids_limit":      {"deploy", "resources", "limits", "pids"},
	"volume_from":     {"volumes_from"},
}
