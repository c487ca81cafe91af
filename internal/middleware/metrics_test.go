package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tweesky/treedoc/internal/metrics"
)

func TestMetrics_CountsByStatusClass(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()

	r := chi.NewRouter()
	r.Use(Metrics(recorder))
	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1.0"))
	})
	r.Get("/tree/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/random", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	for _, path := range []string{"/version", "/tree/x", "/random", "/missing"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	snap := recorder.Snapshot()
	if snap.Requests != 4 {
		t.Errorf("Requests = %d, want 4", snap.Requests)
	}
	if snap.ClientErrors != 2 {
		t.Errorf("ClientErrors = %d, want 2", snap.ClientErrors)
	}
	if snap.ServerErrors != 1 {
		t.Errorf("ServerErrors = %d, want 1", snap.ServerErrors)
	}
}
