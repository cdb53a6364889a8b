package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"sigs.k8s.io/yaml"
)

// OpenAPIHandler serves the API description as JSON.
type OpenAPIHandler struct {
	spec []byte
}

// NewOpenAPIHandler converts yamlSpec to JSON once, up front, so a broken
// document fails at startup rather than on first request.
func NewOpenAPIHandler(yamlSpec []byte) (*OpenAPIHandler, error) {
	spec, err := yaml.YAMLToJSON(yamlSpec)
	if err != nil {
		return nil, fmt.Errorf("converting OpenAPI spec to JSON: %w", err)
	}
	return &OpenAPIHandler{spec: spec}, nil
}

// ServeHTTP writes the JSON document.
func (h *OpenAPIHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.spec); err != nil {
		slog.Error("failed to write OpenAPI spec response", "error", err)
	}
}
