package document

import "strings"

// =============================================================================
// Value Semantics
// =============================================================================

// Truthy reports whether a node counts as "set" when deciding to emit an option.
// Absent nodes, nulls, false, zero, NaN and the empty string are falsy.
// Sequences and maps are always truthy, even when empty.
func Truthy(n Node) bool {
	switch v := n.(type) {
	case nil:
		return false
	case Scalar:
		switch v.Type {
		case TypeNull:
			return false
		case TypeBool:
			return v.Value == "true"
		case TypeInt, TypeFloat:
			return !isZeroNumber(v.Value)
		default:
			return v.Value != ""
		}
	case Sequence, *Map:
		return true
	}
	return false
}

func isZeroNumber(text string) bool {
	if text == "NaN" {
		return true
	}
	t := strings.TrimLeft(text, "+-")
	t = strings.TrimLeft(t, "0")
	t = strings.TrimPrefix(t, ".")
	t = strings.TrimLeft(t, "0")
	return t == "" || t[0] == 'e' || t[0] == 'E'
}

// Text renders a node as plain text.
//
// Scalars render as their canonical value ("null" for null). Sequences render
// their elements joined by commas, with null elements rendered empty. Maps, and
// sequences containing maps, have no text form and report ok=false.
func Text(n Node) (text string, ok bool) {
	switch v := n.(type) {
	case Scalar:
		if v.Type == TypeNull {
			return "null", true
		}
		return v.Value, true
	case Sequence:
		parts := make([]string, len(v))
		for i, el := range v {
			if s, isScalar := el.(Scalar); isScalar && s.IsNull() {
				continue
			}
			t, ok := Text(el)
			if !ok {
				return "", false
			}
			parts[i] = t
		}
		return strings.Join(parts, ","), true
	}
	return "", false
}

// IsScalar reports whether n is a non-null scalar.
func IsScalar(n Node) bool {
	s, ok := n.(Scalar)
	return ok && !s.IsNull()
}

// AsMap returns n as a map, or nil when n is not a map.
func AsMap(n Node) *Map {
	m, _ := n.(*Map)
	return m
}

// AsSequence returns n as a sequence and whether it was one.
func AsSequence(n Node) (Sequence, bool) {
	s, ok := n.(Sequence)
	return s, ok
}
