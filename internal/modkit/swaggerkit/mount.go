// Package swaggerkit serves the embedded OpenAPI document and Swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	phttp "rapih/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapi []byte

// DocMutator adjusts the parsed document before it is served
type DocMutator func(map[string]any)

// Mount serves /api/docs when enabled. mutators run on every request over a
// fresh copy of the document.
func Mount(r phttp.Router, enabled bool, mutators ...DocMutator) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDoc(mutators))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("rapih"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func serveDoc(mutators []DocMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		doc, err := Doc()
		if err != nil {
			http.Error(w, "doc parse error", http.StatusInternalServerError)
			return
		}
		for _, m := range mutators {
			m(doc)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// Doc parses the embedded document and fills in servers when missing
func Doc() (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(openapi, &doc); err != nil {
		return nil, err
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": "/api/v1"}}
	}
	return doc, nil
}

// WithVersion stamps info.version
func WithVersion(v string) DocMutator {
	return func(doc map[string]any) {
		if info, ok := doc["info"].(map[string]any); ok && v != "" {
			info["version"] = v
		}
	}
}
