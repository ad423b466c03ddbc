// Package convert provides the conversion service: compose text in, container
// commands out.
// This is part of the Imperative Shell - it logs and calls the pure compose and
// transcode packages.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/artpar/decomposer/internal/core/compose"
	"github.com/artpar/decomposer/internal/core/transcode"
)

// =============================================================================
// Service Errors
// =============================================================================

var (
	// ErrInvalidOptions is returned when the conversion options are rejected.
	ErrInvalidOptions = errors.New("invalid conversion options")

	// ErrInterpolation is returned when interpolation is enabled and a template is invalid.
	ErrInterpolation = errors.New("interpolation failed")
)

// =============================================================================
// Conversion Service
// =============================================================================

// Service converts compose documents.
type Service struct {
	logger *slog.Logger
}

// NewService creates a new conversion service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// =============================================================================
// Request/Result
// =============================================================================

// Status describes how a conversion ended.
type Status string

const (
	// StatusConverted means at least one service was rendered.
	StatusConverted Status = "converted"
	// StatusNoServices means the document declares no services; the output is empty.
	StatusNoServices Status = "no_services"
	// StatusMalformed means services is not a map; the output is the malformed marker.
	StatusMalformed Status = "malformed"
	// StatusUnparsable means the text is not a YAML mapping; the output is empty.
	StatusUnparsable Status = "unparsable"
)

// Request contains the input for one conversion.
type Request struct {
	// Compose is the raw compose file content.
	Compose string

	// Options controls the rendering of the commands.
	Options transcode.Config

	// Interpolate substitutes ${VAR} references using Lookup before conversion.
	Interpolate bool

	// Lookup resolves variables when Interpolate is set. Nil means no variables are set.
	Lookup compose.LookupFunc
}

// Result contains the output of one conversion.
type Result struct {
	// Output is the newline-separated command text.
	Output string

	// Commands are the individual commands in output order.
	Commands []transcode.Command

	// Status says whether the output is a real conversion or a degraded one.
	Status Status

	// Variables lists the ${VAR} references found in the input, in order.
	Variables []string
}

// Convert parses, migrates and transcodes one compose document.
//
// Unusable content never fails the call: unparsable text and documents without
// services give an empty Output, and non-map services give the malformed marker.
// Errors are returned only for invalid options and failed interpolation.
func (s *Service) Convert(ctx context.Context, req Request) (*Result, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	result := &Result{Variables: compose.ExtractVariablesFromYAML(req.Compose)}

	doc, err := compose.Load(req.Compose, compose.Options{
		Interpolate: req.Interpolate,
		Lookup:      req.Lookup,
	})
	if err != nil {
		if errors.Is(err, compose.ErrInterpolation) {
			return nil, fmt.Errorf("%w: %w", ErrInterpolation, err)
		}
		s.logger.WarnContext(ctx, "compose document not parsable", "error", err)
		result.Status = StatusUnparsable
		return result, nil
	}

	cmds, err := transcode.Commands(doc, req.Options)
	switch {
	case errors.Is(err, transcode.ErrNoServices):
		s.logger.WarnContext(ctx, "compose document has no services")
		result.Status = StatusNoServices
		return result, nil
	case errors.Is(err, transcode.ErrMalformedServices):
		s.logger.WarnContext(ctx, "compose services are not a map")
		result.Status = StatusMalformed
		result.Output = transcode.MalformedMarker
		return result, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	result.Status = StatusConverted
	result.Commands = cmds
	result.Output = transcode.Render(cmds)

	s.logger.DebugContext(ctx, "compose document converted",
		"services", countKind(cmds, transcode.KindService),
		"networks", countKind(cmds, transcode.KindNetwork),
		"volumes", countKind(cmds, transcode.KindVolume),
		"variables", len(result.Variables),
	)
	return result, nil
}

func countKind(cmds []transcode.Command, kind transcode.Kind) int {
	n := 0
	for _, c := range cmds {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
