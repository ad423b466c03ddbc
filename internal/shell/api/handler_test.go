package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestHandler() http.Handler {
	return NewHandler(nil, nil, 0, "test").Routes()
}

func postConvert(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// =============================================================================
// Health Tests
// =============================================================================

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

// =============================================================================
// Convert Tests
// =============================================================================

func TestConvert(t *testing.T) {
	rec := postConvert(t, newTestHandler(), ConvertRequest{
		Compose: "services:\n  web:\n    ports:\n      - '80:80'\n    image: nginx\nnetworks:\n  front:\n",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ConvertResponse](t, rec)
	assert.True(t, strings.HasPrefix(resp.ID, "conv_"))
	assert.Equal(t, "converted", resp.Status)
	assert.Equal(t, "docker network create front\ndocker run -p 80:80 nginx", resp.Output)
	assert.Equal(t, []CommandResponse{
		{Kind: "network", Name: "front", Command: "docker network create front"},
		{Kind: "service", Name: "web", Command: "docker run -p 80:80 nginx"},
	}, resp.Commands)
	assert.Empty(t, resp.Variables)
}

func TestConvert_Options(t *testing.T) {
	rec := postConvert(t, newTestHandler(), ConvertRequest{
		Compose: "services:\n  web:\n    container_name: foobar\n    image: nginx\n",
		Options: ConvertOptions{
			Command:           "podman run",
			Rm:                true,
			Detach:            true,
			LongArgs:          true,
			ArgValueSeparator: "=",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "podman run --rm --detach --name=foobar nginx", decode[ConvertResponse](t, rec).Output)
}

func TestConvert_Interpolation(t *testing.T) {
	rec := postConvert(t, newTestHandler(), ConvertRequest{
		Compose: "services:\n  web:\n    image: nginx:${TAG}\n",
		Options: ConvertOptions{Interpolate: true},
		Env:     map[string]string{"TAG": "1.27"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ConvertResponse](t, rec)
	assert.Equal(t, "docker run nginx:1.27", resp.Output)
	assert.Equal(t, []string{"TAG"}, resp.Variables)
}

func TestConvert_DegradedOutputs(t *testing.T) {
	tests := []struct {
		name       string
		compose    string
		wantStatus string
		wantOutput string
	}{
		{"invalid yaml", `foo bar"`, "unparsable", ""},
		{"no services", "version: '3'\n", "no_services", ""},
		{"malformed services", "services: web\n", "malformed", "# invalid Docker Compose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postConvert(t, newTestHandler(), ConvertRequest{Compose: tt.compose})
			require.Equal(t, http.StatusOK, rec.Code)

			resp := decode[ConvertResponse](t, rec)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantOutput, resp.Output)
			assert.Empty(t, resp.Commands)
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"invalid json", `{"compose":`, http.StatusBadRequest, "validation_error"},
		{
			"bad separator",
			ConvertRequest{Compose: "services:\n  web:\n    image: nginx\n", Options: ConvertOptions{ArgValueSeparator: ":"}},
			http.StatusBadRequest, "validation_error",
		},
		{"missing compose", ConvertRequest{Compose: "  "}, http.StatusBadRequest, "validation_error"},
		{
			"bad env name",
			ConvertRequest{Compose: "services: {}\n", Options: ConvertOptions{Interpolate: true}, Env: map[string]string{"A=B": "x"}},
			http.StatusBadRequest, "validation_error",
		},
		{
			"env without interpolate",
			ConvertRequest{Compose: "services: {}\n", Env: map[string]string{"TAG": "1"}},
			http.StatusBadRequest, "validation_error",
		},
		{
			"missing required variable",
			ConvertRequest{Compose: "services:\n  web:\n    image: ${TAG:?required}\n", Options: ConvertOptions{Interpolate: true}},
			http.StatusUnprocessableEntity, "interpolation_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postConvert(t, newTestHandler(), tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decode[ErrorResponse](t, rec).Code)
		})
	}
}

func TestConvert_BodyTooLarge(t *testing.T) {
	h := NewHandler(nil, nil, 64, "test").Routes()
	rec := postConvert(t, h, ConvertRequest{Compose: strings.Repeat("x", 256)})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "body_too_large", decode[ErrorResponse](t, rec).Code)
}

func TestConvert_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/convert", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// =============================================================================
// OpenAPI Tests
// =============================================================================

func TestOpenAPI(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Version string `json:"version"`
		} `json:"info"`
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]struct {
				Properties map[string]any `json:"properties"`
				Required   []string       `json:"required"`
			} `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "test", doc.Info.Version)
	assert.Contains(t, doc.Paths["/api/v1/convert"], "post")
	assert.Contains(t, doc.Paths["/health"], "get")

	req := doc.Components.Schemas["ConvertRequest"]
	assert.Contains(t, req.Properties, "compose")
	assert.Contains(t, req.Properties, "options")
	assert.Contains(t, req.Properties, "env")
	assert.Equal(t, []string{"compose", "options"}, req.Required)

	resp := doc.Components.Schemas["ConvertResponse"]
	for _, field := range []string{"id", "status", "output", "commands", "variables"} {
		assert.Contains(t, resp.Properties, field)
	}
	assert.Contains(t, doc.Components.Schemas, "ErrorResponse")
	assert.Contains(t, doc.Components.Schemas, "HealthResponse")
}
