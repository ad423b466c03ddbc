package document

import "iter"

// =============================================================================
// Node Variants
// =============================================================================

// Kind identifies the variant of a Node.
type Kind int

const (
	KindScalar Kind = iota + 1
	KindSequence
	KindMap
)

// Node is one value in a document tree. The variants are Scalar, Sequence and *Map.
type Node interface {
	Kind() Kind
}

// ScalarType is the resolved YAML type of a scalar.
type ScalarType int

const (
	TypeNull ScalarType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
)

// Scalar is a leaf value. Value holds the canonical text of the scalar:
// "true"/"false" for booleans, the shortest decimal form for numbers.
type Scalar struct {
	Type  ScalarType
	Value string
}

// Kind implements Node.
func (Scalar) Kind() Kind { return KindScalar }

// IsNull reports whether the scalar is an explicit null.
func (s Scalar) IsNull() bool { return s.Type == TypeNull }

// Sequence is an ordered list of nodes.
type Sequence []Node

// Kind implements Node.
func (Sequence) Kind() Kind { return KindSequence }

// =============================================================================
// Scalar Constructors
// =============================================================================

// Null returns an explicit null scalar.
func Null() Scalar { return Scalar{Type: TypeNull} }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{Type: TypeString, Value: s} }

// Number returns a numeric scalar from its canonical text.
// Text containing a '.', 'e' or an infinity/NaN marker is typed as a float.
func Number(text string) Scalar {
	for _, c := range text {
		switch c {
		case '.', 'e', 'E', 'I', 'N':
			return Scalar{Type: TypeFloat, Value: text}
		}
	}
	return Scalar{Type: TypeInt, Value: text}
}

// Bool returns a boolean scalar.
func Bool(b bool) Scalar {
	if b {
		return Scalar{Type: TypeBool, Value: "true"}
	}
	return Scalar{Type: TypeBool, Value: "false"}
}

// =============================================================================
// Ordered Map
// =============================================================================

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value Node
}

// Map is a string-keyed map that remembers insertion order.
// The zero value is an empty map ready to use. A nil *Map behaves as an empty map for reads.
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap creates a map holding the given entries in order.
func NewMap(entries ...Entry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Kind implements Node.
func (*Map) Kind() Kind { return KindMap }

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key string, value Node) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Value returns the value stored under key, or nil when the key is absent.
func (m *Map) Value(key string) Node {
	v, _ := m.Get(key)
	return v
}

// First returns the value of the first entry.
func (m *Map) First() (Node, bool) {
	if m.Len() == 0 {
		return nil, false
	}
	return m.entries[0].Value, true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// =============================================================================
// Document
// =============================================================================

// Document is the canonical form of a compose file: the three resource classes.
// Each section is nil when the document does not declare it.
type Document struct {
	Services Node
	Networks Node
	Volumes  Node
}

// FromMap builds a Document from a parsed top-level map.
func FromMap(root *Map) *Document {
	return &Document{
		Services: root.Value("services"),
		Networks: root.Value("networks"),
		Volumes:  root.Value("volumes"),
	}
}
