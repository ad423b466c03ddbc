package transcode

import "fmt"

// =============================================================================
// Configuration
// =============================================================================

// Separator joins a flag and its value.
type Separator string

const (
	SeparatorSpace  Separator = " "
	SeparatorEquals Separator = "="
)

// DefaultCommand is the command prefix for services.
const DefaultCommand = "docker run"

// Config controls how commands are rendered. The zero value renders with the defaults.
type Config struct {
	// Command prefixes every service command (default "docker run").
	Command string
	// RemoveAfterRun adds --rm to every service command.
	RemoveAfterRun bool
	// Detach adds -d (--detach with LongArgs) to every service command.
	Detach bool
	// Multiline puts every token on its own backslash-continued line.
	Multiline bool
	// LongArgs prefers long flag spellings over short ones.
	LongArgs bool
	// ArgValueSeparator joins flags and values (default " ").
	ArgValueSeparator Separator
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Command:           DefaultCommand,
		ArgValueSeparator: SeparatorSpace,
	}
}

// ParseSeparator validates a separator given as text.
func ParseSeparator(s string) (Separator, error) {
	switch Separator(s) {
	case SeparatorSpace, SeparatorEquals:
		return Separator(s), nil
	case "":
		return SeparatorSpace, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidSeparator, s)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	_, err := ParseSeparator(string(c.ArgValueSeparator))
	return err
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Command == "" {
		c.Command = DefaultCommand
	}
	if c.ArgValueSeparator == "" {
		c.ArgValueSeparator = SeparatorSpace
	}
	return c
}
