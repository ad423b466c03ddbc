package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nginxCompose = `
services:
  nginx:
    container_name: foobar
    volumes:
      - 'vol:/tmp'
    image: nginx
`

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// =============================================================================
// Convert Command Tests
// =============================================================================

func TestConvertCommand_Stdin(t *testing.T) {
	stdout, _, err := execute(t, nginxCompose)
	require.NoError(t, err)
	assert.Equal(t, "docker run --name foobar -v vol:/tmp nginx\n", stdout)
}

func TestConvertCommand_Flags(t *testing.T) {
	stdout, _, err := execute(t, nginxCompose,
		"--rm", "-d", "--long-args", "--arg-value-separator", "=", "-")
	require.NoError(t, err)
	assert.Equal(t, "docker run --rm --detach --name=foobar --volume=vol:/tmp nginx\n", stdout)
}

func TestConvertCommand_Multiline(t *testing.T) {
	stdout, _, err := execute(t, "services:\n  hello:\n    volumes:\n      - 'vol:/tmp'\n    image: hello-world\nvolumes:\n  vol:\n",
		"--multiline")
	require.NoError(t, err)
	assert.Equal(t, "docker volume create vol\ndocker run -v vol:/tmp \\\n\thello-world\n", stdout)
}

func TestConvertCommand_Files(t *testing.T) {
	first := writeFile(t, "first.yml", nginxCompose)
	second := writeFile(t, "second.yml", "services:\n  db:\n    image: postgres\n")

	stdout, _, err := execute(t, "", "--command", "podman run", first, second)
	require.NoError(t, err)
	assert.Equal(t, "podman run --name foobar -v vol:/tmp nginx\npodman run postgres\n", stdout)
}

func TestConvertCommand_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "convert:\n  rm: true\n  command: docker create\n")

	stdout, _, err := execute(t, nginxCompose, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "docker create --rm --name foobar -v vol:/tmp nginx\n", stdout)
}

func TestConvertCommand_Interpolate(t *testing.T) {
	content := "services:\n  web:\n    image: nginx:${DECOMPOSER_TEST_TAG:-latest}\n"

	stdout, _, err := execute(t, content)
	require.NoError(t, err)
	assert.Equal(t, "docker run nginx:${DECOMPOSER_TEST_TAG:-latest}\n", stdout)

	t.Setenv("DECOMPOSER_TEST_TAG", "1.27")
	stdout, _, err = execute(t, content, "--interpolate")
	require.NoError(t, err)
	assert.Equal(t, "docker run nginx:1.27\n", stdout)
}

func TestConvertCommand_DegradedContentIsNotAnError(t *testing.T) {
	stdout, stderr, err := execute(t, `foo bar"`)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "not parsable")

	stdout, _, err = execute(t, "services: web\n")
	require.NoError(t, err)
	assert.Equal(t, "# invalid Docker Compose\n", stdout)
}

func TestConvertCommand_MissingFileKeepsGoing(t *testing.T) {
	good := writeFile(t, "good.yml", "services:\n  db:\n    image: postgres\n")
	missing := filepath.Join(t.TempDir(), "missing.yml")

	stdout, _, err := execute(t, "", missing, good)
	require.Error(t, err)
	assert.Equal(t, "docker run postgres\n", stdout)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, ExitInputError, cmdErr.ExitCode)
	assert.Contains(t, err.Error(), "missing.yml")
}

func TestConvertCommand_InvalidSeparator(t *testing.T) {
	_, _, err := execute(t, nginxCompose, "--arg-value-separator", ":")

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, ExitConfigError, cmdErr.ExitCode)
}

// =============================================================================
// Other Command Tests
// =============================================================================

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "decomposer dev (built unknown)\n", stdout)
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, ExitSuccess, exitCode(nil, &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, ExitInputError, exitCode(&CommandError{Op: "Convert", Err: errors.New("boom"), ExitCode: ExitInputError}, &stderr))
	assert.Contains(t, stderr.String(), "error: Convert: boom")

	assert.Equal(t, ExitUsageError, exitCode(errors.New("unknown flag"), &stderr))
}
