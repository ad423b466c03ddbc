package transcode

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/artpar/decomposer/internal/core/document"
)

// =============================================================================
// Quoting
// =============================================================================

// Quote wraps s in double quotes when it contains whitespace or a double quote.
// Only the first embedded double quote is escaped.
func Quote(s string) string {
	if !strings.ContainsFunc(s, needsQuote) {
		return s
	}
	return `"` + strings.Replace(s, `"`, `\"`, 1) + `"`
}

func needsQuote(r rune) bool {
	return r == '"' || unicode.IsSpace(r) || r == '\ufeff'
}

// =============================================================================
// Encoders
// =============================================================================

// EmitFunc receives one option value. An empty value means a bare flag.
type EmitFunc func(value string)

type encodeFunc func(v document.Node, emit EmitFunc)

var encoders = [...]encodeFunc{
	TypeArray:        encodeArray,
	TypeSwitch:       encodeSwitch,
	TypeValue:        encodeValue,
	TypeIntValue:     encodeRaw,
	TypeFloatValue:   encodeRaw,
	TypeUlimits:      encodeUlimits,
	TypeMap:          encodeMap,
	TypeMapArray:     encodeMapArray,
	TypeDeviceRate:   encodeDevices("rate"),
	TypeDeviceWeight: encodeDevices("weight"),
}

// Encode turns v into zero or more option values according to t.
func Encode(t ValueType, v document.Node, emit EmitFunc) {
	if t <= 0 || int(t) >= len(encoders) || encoders[t] == nil {
		return
	}
	encoders[t](v, emit)
}

// encodeArray emits one option per scalar element, a lone string as itself, or
// one key=value option per map entry (a bare key when the value is null).
func encodeArray(v document.Node, emit EmitFunc) {
	switch x := v.(type) {
	case document.Sequence:
		for _, el := range x {
			if !document.IsScalar(el) {
				continue
			}
			t, _ := document.Text(el)
			emit(Quote(t))
		}
	case document.Scalar:
		if x.Type == document.TypeString {
			emit(Quote(x.Value))
		}
	case *document.Map:
		for k, val := range x.All() {
			if s, ok := val.(document.Scalar); ok && s.IsNull() {
				emit(k)
				continue
			}
			t, ok := document.Text(val)
			if !ok {
				continue
			}
			emit(k + "=" + Quote(t))
		}
	}
}

func encodeSwitch(v document.Node, emit EmitFunc) {
	if t, ok := document.Text(v); ok && t == "true" {
		emit("")
	}
}

func encodeValue(v document.Node, emit EmitFunc) {
	if t, ok := document.Text(v); ok {
		emit(Quote(t))
	}
}

func encodeRaw(v document.Node, emit EmitFunc) {
	if t, ok := document.Text(v); ok {
		emit(t)
	}
}

// encodeUlimits emits name=soft:hard for limit maps and name=value for scalars.
func encodeUlimits(v document.Node, emit EmitFunc) {
	for name, limit := range document.AsMap(v).All() {
		if lm := document.AsMap(limit); lm != nil {
			soft, hard := lm.Value("soft"), lm.Value("hard")
			if !GatePresent.admits(soft) || !GatePresent.admits(hard) {
				continue
			}
			s, okSoft := document.Text(soft)
			h, okHard := document.Text(hard)
			if okSoft && okHard {
				emit(name + "=" + s + ":" + h)
			}
			continue
		}
		if document.IsScalar(limit) {
			t, _ := document.Text(limit)
			emit(name + "=" + t)
		}
	}
}

// encodeDevices emits path:<field> for every well-formed element of a sequence.
func encodeDevices(field string) encodeFunc {
	return func(v document.Node, emit EmitFunc) {
		seq, _ := document.AsSequence(v)
		for _, el := range seq {
			m := document.AsMap(el)
			if m == nil {
				continue
			}
			path, rate := m.Value("path"), m.Value(field)
			if !document.IsScalar(path) || !document.IsScalar(rate) {
				continue
			}
			p, _ := document.Text(path)
			r, _ := document.Text(rate)
			emit(p + ":" + r)
		}
	}
}

// encodeMap emits all entries joined into one option.
func encodeMap(v document.Node, emit EmitFunc) {
	if pairs := joinPairs(document.AsMap(v)); pairs != "" {
		emit(pairs)
	}
}

// encodeMapArray emits one option per map element; other elements are skipped.
func encodeMapArray(v document.Node, emit EmitFunc) {
	seq, _ := document.AsSequence(v)
	for _, el := range seq {
		if pairs := joinPairs(document.AsMap(el)); pairs != "" {
			emit(pairs)
		}
	}
}

// joinPairs renders k=v entries joined by commas. Nested maps flatten into
// key-subkey=v.
func joinPairs(m *document.Map) string {
	var parts []string
	appendPairs(&parts, "", m)
	return strings.Join(parts, ",")
}

func appendPairs(parts *[]string, prefix string, m *document.Map) {
	for k, val := range m.All() {
		key := prefix + k
		if nested := document.AsMap(val); nested != nil {
			appendPairs(parts, key+"-", nested)
			continue
		}
		t, ok := document.Text(val)
		if !ok {
			continue
		}
		*parts = append(*parts, key+"="+Quote(t))
	}
}

// indexedPairs renders resource options given as a map (k=v) or a sequence
// (position=v).
func indexedPairs(v document.Node) []string {
	var out []string
	switch x := v.(type) {
	case *document.Map:
		for k, val := range x.All() {
			if t, ok := document.Text(val); ok {
				out = append(out, k+"="+Quote(t))
			}
		}
	case document.Sequence:
		for i, el := range x {
			if t, ok := document.Text(el); ok && document.IsScalar(el) {
				out = append(out, strconv.Itoa(i)+"="+Quote(t))
			}
		}
	}
	return out
}
