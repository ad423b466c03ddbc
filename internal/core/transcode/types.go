package transcode

import (
	"strings"

	"github.com/artpar/decomposer/internal/core/document"
)

// =============================================================================
// Value Types
// =============================================================================

// ValueType says how a resolved value turns into option values.
type ValueType int

const (
	TypeArray ValueType = iota + 1
	TypeSwitch
	TypeValue
	TypeIntValue
	TypeFloatValue
	TypeUlimits
	TypeMap
	TypeMapArray
	TypeDeviceRate
	TypeDeviceWeight
)

var valueTypeNames = [...]string{
	TypeArray:        "Array",
	TypeSwitch:       "Switch",
	TypeValue:        "Value",
	TypeIntValue:     "IntValue",
	TypeFloatValue:   "FloatValue",
	TypeUlimits:      "Ulimits",
	TypeMap:          "Map",
	TypeMapArray:     "MapArray",
	TypeDeviceRate:   "DeviceRate",
	TypeDeviceWeight: "DeviceWeight",
}

func (t ValueType) String() string {
	if t <= 0 || int(t) >= len(valueTypeNames) {
		return "Unknown"
	}
	return valueTypeNames[t]
}

// Gate decides whether a resolved value is worth encoding at all.
type Gate int

const (
	// GateTruthy requires a truthy value (see document.Truthy).
	GateTruthy Gate = iota
	// GatePresent requires a non-null value that renders to non-empty text,
	// so zero and false still emit.
	GatePresent
)

func (g Gate) admits(v document.Node) bool {
	if g == GatePresent {
		if s, isScalar := v.(document.Scalar); isScalar {
			return !s.IsNull() && s.Value != ""
		}
		return v != nil
	}
	return document.Truthy(v)
}

// =============================================================================
// Flags
// =============================================================================

// Flags holds the spellings of one CLI option. Short is empty when the option
// has no short form.
type Flags struct {
	Long  string
	Short string
}

// ParseFlags parses "long/short" or "long".
func ParseFlags(s string) Flags {
	long, short, _ := strings.Cut(s, "/")
	return Flags{Long: long, Short: short}
}

// String returns the "long/short" spelling.
func (f Flags) String() string {
	if f.Short == "" {
		return f.Long
	}
	return f.Long + "/" + f.Short
}

// Name picks the spelling to use: the long form when longArgs is set, otherwise
// the short form when there is one.
func (f Flags) Name(longArgs bool) string {
	if longArgs && f.Long != "" {
		return f.Long
	}
	if f.Short != "" {
		return f.Short
	}
	return f.Long
}

// Token renders the dashed flag: "-" for one-letter names, "--" otherwise.
func (f Flags) Token(longArgs bool) string {
	name := f.Name(longArgs)
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// =============================================================================
// Mapping
// =============================================================================

// Mapping binds a CLI option to the place in a service that feeds it.
// An empty Path is never looked up in a service; such options are driven by Config.
type Mapping struct {
	Flags Flags
	Type  ValueType
	Path  document.Path
	Gate  Gate
}
