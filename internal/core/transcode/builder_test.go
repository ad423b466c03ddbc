package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Option(t *testing.T) {
	b := NewBuilder("docker run", Config{})
	b.Option(ParseFlags("publish/p"), "80:80")
	b.Option(rmFlags, "")
	b.Arg("nginx")

	assert.Equal(t, []string{"-p 80:80", "--rm", "nginx"}, b.tokens)
	assert.Equal(t, "docker run -p 80:80 --rm nginx", b.String())
}

func TestBuilder_EqualsSeparatorAndLongArgs(t *testing.T) {
	b := NewBuilder("docker run", Config{LongArgs: true, ArgValueSeparator: SeparatorEquals})
	b.Option(ParseFlags("publish/p"), "80:80")
	b.Option(ParseFlags("detach/d"), "")
	b.Arg("nginx")

	assert.Equal(t, "docker run --publish=80:80 --detach nginx", b.String())
}

func TestBuilder_Multiline(t *testing.T) {
	b := NewBuilder("docker run", Config{Multiline: true})
	b.Option(ParseFlags("volume/v"), "vol:/tmp")
	b.Arg("hello-world")

	assert.Equal(t, "docker run -v vol:/tmp \\\n\thello-world", b.String())
}

func TestBuilder_CollapsesSpaces(t *testing.T) {
	b := NewBuilder("docker  run", Config{})
	b.Arg("sh   -c")

	assert.Equal(t, "docker run sh -c", b.String())
}

func TestBuilder_EmptyArgIgnored(t *testing.T) {
	b := NewBuilder("docker volume create", Config{})
	b.Arg("")
	assert.Empty(t, b.tokens)
	assert.Equal(t, "docker volume create", b.String())
}

func TestBuilder_Emitter(t *testing.T) {
	b := NewBuilder("docker run", Config{})
	emit := b.Emitter(ParseFlags("env/e"))
	emit("A=1")
	emit("B=2")
	assert.Equal(t, "docker run -e A=1 -e B=2", b.String())
}
