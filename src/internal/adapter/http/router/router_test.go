package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nttbank/msaccount/src/internal/metrics"
)

type registrarStub struct{}

func (registrarStub) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle("GET /accounts", handler)
}

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func TestRouterProtectsOnlyRegisteredRoutes(t *testing.T) {
	handler := New(metrics.NewCollector(), denyAll, registrarStub{})

	tests := []struct {
		path string
		want int
	}{
		{path: "/accounts", want: http.StatusUnauthorized},
		{path: "/healthz", want: http.StatusOK},
		{path: "/metrics", want: http.StatusOK},
		{path: "/swagger/", want: http.StatusOK},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rr.Code != tt.want {
			t.Fatalf("expected status %d for %s, got %d", tt.want, tt.path, rr.Code)
		}
	}
}

func TestOpenAPIDocumentIsValidJSON(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(openAPI), &doc); err != nil {
		t.Fatalf("expected valid OpenAPI JSON, got %v", err)
	}
	paths, ok := doc["paths"].(map[string]any)
	if !ok || paths["/accounts/{id}/deposit"] == nil {
		t.Fatalf("expected deposit path in OpenAPI document")
	}
}
