// Package api provides HTTP handlers for the decomposer API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/artpar/decomposer/internal/core/compose"
	"github.com/artpar/decomposer/internal/core/transcode"
	"github.com/artpar/decomposer/internal/core/validation"
	"github.com/artpar/decomposer/internal/shell/api/openapi"
	"github.com/artpar/decomposer/internal/shell/convert"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// DefaultMaxBodyBytes limits request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the API.
type Handler struct {
	converter    *convert.Service
	logger       *slog.Logger
	maxBodyBytes int64
	version      string
	openapi      *openapi.Generator
}

// NewHandler creates a new API handler.
// maxBodyBytes <= 0 uses DefaultMaxBodyBytes.
func NewHandler(c *convert.Service, l *slog.Logger, maxBodyBytes int64, version string) *Handler {
	if l == nil {
		l = slog.Default()
	}
	if c == nil {
		c = convert.NewService(l)
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		converter:    c,
		logger:       l,
		maxBodyBytes: maxBodyBytes,
		version:      version,
		openapi:      newOpenAPIGenerator(version),
	}
}

// newOpenAPIGenerator documents the routes served by Routes.
func newOpenAPIGenerator(version string) *openapi.Generator {
	g := openapi.NewGenerator(
		openapi.WithTitle("Decomposer API"),
		openapi.WithVersion(version),
		openapi.WithDescription("Converts docker compose documents into docker run commands"),
	)
	g.RegisterOperation(openapi.OperationInfo{
		Method:  http.MethodPost,
		Path:    "/api/v1/convert",
		ID:      "convert",
		Summary: "Convert a compose document",
		Tag:     "Convert",
		Request: ConvertRequest{},
		Responses: map[int]any{
			http.StatusOK:                    ConvertResponse{},
			http.StatusBadRequest:            ErrorResponse{},
			http.StatusRequestEntityTooLarge: ErrorResponse{},
			http.StatusUnprocessableEntity:   ErrorResponse{},
			http.StatusInternalServerError:   ErrorResponse{},
		},
	})
	g.RegisterOperation(openapi.OperationInfo{
		Method:    http.MethodGet,
		Path:      "/health",
		ID:        "health",
		Summary:   "Health check",
		Tag:       "Health",
		Responses: map[int]any{http.StatusOK: HealthResponse{}},
	})
	return g
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	// Health endpoints
	r.Get("/health", h.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/convert", h.handleConvert)
		r.Get("/openapi.json", h.openapi.Handler())
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}

// =============================================================================
// Convert Handlers
// =============================================================================

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "body_too_large")
			return
		}
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateConvertFields(req.Compose, req.Options.ArgValueSeparator); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}
	if field, msg := validation.ValidateEnv(req.Env); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}
	if allowed, reason := validation.CanInterpolate(req.Options.Interpolate, len(req.Env)); !allowed {
		h.writeError(w, http.StatusBadRequest, reason, "validation_error")
		return
	}

	opts, err := req.Options.toConfig()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	}

	result, err := h.converter.Convert(r.Context(), convert.Request{
		Compose:     req.Compose,
		Options:     opts,
		Interpolate: req.Options.Interpolate,
		Lookup:      compose.MapLookup(req.Env),
	})
	switch {
	case errors.Is(err, convert.ErrInterpolation):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error(), "interpolation_error")
		return
	case errors.Is(err, convert.ErrInvalidOptions):
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	case err != nil:
		h.logger.Error("conversion failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "conversion failed", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, resultToResponse("conv_"+uuid.New().String()[:8], result))
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func resultToResponse(id string, result *convert.Result) ConvertResponse {
	resp := ConvertResponse{
		ID:        id,
		Status:    string(result.Status),
		Output:    result.Output,
		Commands:  make([]CommandResponse, 0, len(result.Commands)),
		Variables: result.Variables,
	}
	if resp.Variables == nil {
		resp.Variables = []string{}
	}
	for _, c := range result.Commands {
		resp.Commands = append(resp.Commands, CommandResponse{
			Kind:    string(c.Kind),
			Name:    c.Name,
			Command: c.Line,
		})
	}
	return resp
}

// toConfig turns request options into a transcode configuration.
func (o ConvertOptions) toConfig() (transcode.Config, error) {
	sep, err := transcode.ParseSeparator(o.ArgValueSeparator)
	if err != nil {
		return transcode.Config{}, err
	}
	return transcode.Config{
		Command:           o.Command,
		RemoveAfterRun:    o.Rm,
		Detach:            o.Detach,
		Multiline:         o.Multiline,
		LongArgs:          o.LongArgs,
		ArgValueSeparator: sep,
	}, nil
}
