package handler

import (
	"math/rand"
	"net/http"

	"github.com/tweesky/treedoc/internal/metrics"
)

// APIVersion is the version token returned by GET /version and published
// in the API description.
const APIVersion = "1.0"

// MaxRandomNumber is the inclusive upper bound of GET /random.
const MaxRandomNumber = 1000

// InfoHandler serves the utility endpoints.
type InfoHandler struct {
	metrics metrics.Recorder
}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler(recorder metrics.Recorder) *InfoHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &InfoHandler{metrics: recorder}
}

// GetVersion handles GET /version.
func (h *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) error {
	writeText(w, http.StatusOK, APIVersion)
	return nil
}

// GetMarkdown handles GET /markdown. The operation exists to show how its
// Markdown description renders in the explorer.
func (h *InfoHandler) GetMarkdown(w http.ResponseWriter, r *http.Request) error {
	writeText(w, http.StatusOK, "ok")
	return nil
}

// GetRandomNumber handles GET /random.
func (h *InfoHandler) GetRandomNumber(w http.ResponseWriter, r *http.Request) error {
	n := rand.Intn(MaxRandomNumber + 1)
	h.metrics.IncRandomServed()
	writeJSON(w, http.StatusOK, n)
	return nil
}
