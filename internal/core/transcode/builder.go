package transcode

import (
	"regexp"
	"strings"
)

// =============================================================================
// Command Builder
// =============================================================================

const multilineJoin = " \\\n\t"

var spaceRun = regexp.MustCompile(` {2,}`)

// Builder accumulates the tokens of one command line.
type Builder struct {
	prefix string
	cfg    Config
	tokens []string
}

// NewBuilder starts a command with the given prefix (e.g. "docker run").
func NewBuilder(prefix string, cfg Config) *Builder {
	return &Builder{prefix: prefix, cfg: cfg.withDefaults()}
}

// Option appends a flag, joined to value with the configured separator.
// An empty value appends the bare flag.
func (b *Builder) Option(flags Flags, value string) {
	token := flags.Token(b.cfg.LongArgs)
	if value != "" {
		token += string(b.cfg.ArgValueSeparator) + value
	}
	b.tokens = append(b.tokens, token)
}

// Emitter returns an EmitFunc that appends options for flags.
func (b *Builder) Emitter(flags Flags) EmitFunc {
	return func(value string) { b.Option(flags, value) }
}

// Arg appends a positional token. Empty tokens are ignored.
func (b *Builder) Arg(token string) {
	if token == "" {
		return
	}
	b.tokens = append(b.tokens, token)
}

// String renders the command. Tokens are separated by a space, or by a
// backslash-newline-tab continuation in multiline mode. Runs of spaces collapse
// to one.
func (b *Builder) String() string {
	if len(b.tokens) == 0 {
		return b.prefix
	}
	sep := " "
	if b.cfg.Multiline {
		sep = multilineJoin
	}
	line := b.prefix + " " + strings.Join(b.tokens, sep)
	return spaceRun.ReplaceAllString(line, " ")
}
