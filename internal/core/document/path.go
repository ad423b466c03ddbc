package document

import (
	"strconv"
	"strings"
)

// =============================================================================
// Path Resolution
// =============================================================================

// FirstToken is the textual spelling of the First wildcard segment.
const FirstToken = ":first:"

// Segment is one step of a Path: either a literal key or the First wildcard.
type Segment struct {
	Key   string
	First bool
}

// Path is a parsed slash-delimited address into a document tree.
// The empty path has no segments and never resolves to a value.
type Path []Segment

// ParsePath parses a slash-delimited path. The segment ":first:" becomes the
// First wildcard; every other segment is a literal key.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	p := make(Path, len(parts))
	for i, part := range parts {
		if part == FirstToken {
			p[i] = Segment{First: true}
			continue
		}
		p[i] = Segment{Key: part}
	}
	return p
}

// String returns the slash-delimited spelling of the path.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		if seg.First {
			parts[i] = FirstToken
			continue
		}
		parts[i] = seg.Key
	}
	return strings.Join(parts, "/")
}

// RootedAt reports whether the path starts at the literal key.
func (p Path) RootedAt(key string) bool {
	return len(p) > 0 && !p[0].First && p[0].Key == key
}

// Resolve walks the path from root. It returns nil as soon as a step is absent;
// it never modifies the tree.
func (p Path) Resolve(root Node) Node {
	if len(p) == 0 {
		return nil
	}
	cur := root
	for _, seg := range p {
		if cur == nil {
			return nil
		}
		if seg.First {
			cur = first(cur)
			continue
		}
		cur = child(cur, seg.Key)
	}
	return cur
}

// first returns the first value of a map or the first element of a sequence.
func first(n Node) Node {
	switch v := n.(type) {
	case *Map:
		f, _ := v.First()
		return f
	case Sequence:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	}
	return nil
}

func child(n Node, key string) Node {
	switch v := n.(type) {
	case *Map:
		return v.Value(key)
	case Sequence:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(v) {
			return nil
		}
		return v[i]
	}
	return nil
}
