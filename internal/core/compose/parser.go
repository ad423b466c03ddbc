package compose

import (
	"math"
	"strconv"
	"strings"

	"github.com/artpar/decomposer/internal/core/document"
	"github.com/compose-spec/compose-go/v2/template"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Loader Functions
// =============================================================================

// Load parses compose YAML into the canonical document.
// This is a pure function - no I/O, no side effects.
// Input: raw YAML string
// Output: Document or error
func Load(content string, opts Options) (*document.Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyInput
	}

	root, err := parseYAML(content)
	if err != nil {
		return nil, err
	}

	c := converter{opts: opts}
	node, err := c.convert(root, "")
	if err != nil {
		return nil, err
	}

	return document.FromMap(Migrate(document.AsMap(node))), nil
}

// parseYAML returns the top-level mapping node of the first YAML document.
func parseYAML(content string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, NewParseError("", err.Error(), ErrInvalidYAML)
	}

	// Comment-only input decodes to a zero node
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, NewParseError("", "no YAML document found", ErrInvalidYAML)
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, NewParseError("", "top level is not a mapping", ErrNotMapping)
	}

	return root, nil
}

// =============================================================================
// Node Conversion
// =============================================================================

// converter turns yaml.v3 nodes into document nodes.
type converter struct {
	opts Options
}

func (c converter) convert(n *yaml.Node, field string) (document.Node, error) {
	n = resolveAlias(n)

	switch n.Kind {
	case yaml.MappingNode:
		return c.convertMapping(n, field)
	case yaml.SequenceNode:
		seq := make(document.Sequence, 0, len(n.Content))
		for i, el := range n.Content {
			v, err := c.convert(el, field+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		return c.convertScalar(n, field)
	}

	return document.Null(), nil
}

// convertMapping keeps key order and applies "<<" merge keys.
// Explicit keys win over merged ones; earlier merge sources win over later ones.
func (c converter) convertMapping(n *yaml.Node, field string) (*document.Map, error) {
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if !isMergeKey(n.Content[i]) {
			explicit[n.Content[i].Value] = true
		}
	}

	m := document.NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]

		if isMergeKey(key) {
			for _, src := range mergeSources(value) {
				merged, err := c.convertMapping(src, field)
				if err != nil {
					return nil, err
				}
				for k, v := range merged.All() {
					if _, seen := m.Get(k); seen || explicit[k] {
						continue
					}
					m.Set(k, v)
				}
			}
			continue
		}

		v, err := c.convert(value, joinField(field, key.Value))
		if err != nil {
			return nil, err
		}
		m.Set(key.Value, v)
	}

	return m, nil
}

func (c converter) convertScalar(n *yaml.Node, field string) (document.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return document.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return document.String(n.Value), nil
		}
		return document.Bool(b), nil
	case "!!int":
		return document.Number(canonicalInt(n.Value)), nil
	case "!!float":
		return document.Number(canonicalFloat(n.Value)), nil
	}

	if !c.opts.Interpolate {
		return document.String(n.Value), nil
	}

	lookup := c.opts.Lookup
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	value, err := template.Substitute(n.Value, template.Mapping(lookup))
	if err != nil {
		return nil, NewParseError(field, err.Error(), ErrInterpolation)
	}
	return document.String(value), nil
}

// =============================================================================
// Helpers
// =============================================================================

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

// mergeSources returns the mappings referenced by a merge value.
func mergeSources(n *yaml.Node) []*yaml.Node {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{n}
	case yaml.SequenceNode:
		var out []*yaml.Node
		for _, el := range n.Content {
			if el = resolveAlias(el); el.Kind == yaml.MappingNode {
				out = append(out, el)
			}
		}
		return out
	}
	return nil
}

func joinField(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// canonicalInt renders a YAML integer in plain decimal.
func canonicalInt(text string) string {
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if u, err := strconv.ParseUint(text, 0, 64); err == nil {
		return strconv.FormatUint(u, 10)
	}
	return text
}

// canonicalFloat renders a YAML float the way it prints in shortest form:
// plain decimals between 1e-6 and 1e21, exponent form outside that range.
func canonicalFloat(text string) string {
	switch strings.ToLower(strings.TrimLeft(text, "+")) {
	case ".inf":
		return "Infinity"
	case "-.inf":
		return "-Infinity"
	case ".nan":
		return "NaN"
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
