package apidoc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
	"sigs.k8s.io/yaml"
)

// Output formats accepted by Render.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render serializes the document as indented JSON or YAML.
func Render(doc *openapi3.T, format string) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	switch strings.ToLower(format) {
	case "", FormatJSON:
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("convert openapi document to yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// DocumentHandler serves a pre-rendered OpenAPI document.
type DocumentHandler struct {
	body []byte
}

// NewDocumentHandler renders doc once so every request returns identical bytes.
func NewDocumentHandler(doc *openapi3.T) (*DocumentHandler, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return &DocumentHandler{body: body}, nil
}

// ServeHTTP writes the document as JSON.
//
// GET /openapi.json
func (h *DocumentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", ContentJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)
}

// UIHandler returns the interactive explorer reading the document from specURL.
// It must be mounted under a prefix ending in "/*", e.g. /apidocs/*.
func UIHandler(specURL string) http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(specURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	)
}
