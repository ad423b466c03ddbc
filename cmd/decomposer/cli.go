package main

import (
	"fmt"
	"io"
	"os"

	"github.com/artpar/decomposer/internal/shell/convert"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// =============================================================================
// Commands
// =============================================================================

// app carries the streams and global flags shared by all commands.
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "decomposer [FILE...]",
		Short: "Turn docker compose files into docker run commands",
		Long: `decomposer reads docker compose files and prints the equivalent
docker network create, docker volume create and docker run commands.

With no FILE, or when FILE is -, the compose file is read from standard input.

Examples:
  decomposer docker-compose.yml
  decomposer --multiline --long-args < docker-compose.yml
  decomposer --command "podman run" -d compose.yaml`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runConvert,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Global flags
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json, pretty")

	// Conversion flags
	f := root.Flags()
	f.String("command", "docker run", "command used to run each service")
	f.Bool("rm", false, "add --rm to every service")
	f.BoolP("detach", "d", false, "add -d to every service")
	f.Bool("multiline", false, "put every argument on its own line")
	f.Bool("long-args", false, "prefer long flag names")
	f.String("arg-value-separator", " ", `separator between flags and values: " " or "="`)
	f.Bool("interpolate", false, "substitute ${VAR} references from the environment")

	root.AddCommand(a.newServeCmd())
	root.AddCommand(a.newVersionCmd())
	return root
}

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.cfgFile, cmd.Flags())
			if err != nil {
				return &CommandError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
			}
			logger := SetupLogger(cfg, a.stderr)
			logger.Info("starting decomposer", "version", Version, "config", a.cfgFile)

			return NewServer(cfg, logger).Start(cmd.Context())
		},
	}
	cmd.Flags().String("host", "127.0.0.1", "address to listen on")
	cmd.Flags().Int("port", 8080, "port to listen on")
	return cmd
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "decomposer %s (built %s)\n", Version, BuildTime)
		},
	}
}

// =============================================================================
// Conversion
// =============================================================================

// runConvert converts every input in order. A failing input does not stop the
// others; all failures are reported together.
func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(a.cfgFile, cmd.Flags())
	if err != nil {
		return &CommandError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
	}
	opts, err := cfg.Convert.Options()
	if err != nil {
		return &CommandError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
	}

	logger := SetupLogger(cfg, a.stderr)
	svc := convert.NewService(logger)

	if len(args) == 0 {
		args = []string{"-"}
	}

	var errs *multierror.Error
	for _, name := range args {
		content, err := a.readInput(name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		result, err := svc.Convert(cmd.Context(), convert.Request{
			Compose:     content,
			Options:     opts,
			Interpolate: cfg.Convert.Interpolate,
			Lookup:      os.LookupEnv,
		})
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		logger.Debug("converted", "input", name, "status", result.Status, "commands", len(result.Commands))
		if result.Output != "" {
			fmt.Fprintln(a.stdout, result.Output)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return &CommandError{Op: "Convert", Err: err, ExitCode: ExitInputError}
	}
	return nil
}

func (a *app) readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
