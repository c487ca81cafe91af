package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/tweesky/treedoc/internal/apierr"
	"github.com/tweesky/treedoc/internal/metrics"
	"github.com/tweesky/treedoc/internal/model"
)

// Request parameter names read by the tree handlers.
const (
	ParamID         = "id"
	ParamName       = "name"
	ParamExtended   = "extended"
	ParamIdentifier = "identifier"
	TreeIDHeader    = "X-Tree-ID"
	TreeIDCookie    = "tree-id"
)

// Client-facing validation messages.
const (
	MsgIDMissing      = "Id is missing"
	MsgIDNotInteger   = "id must be an integer"
	MsgNameMalformed  = "name is malformed"
	MsgInvalidBody    = "Invalid request body"
	msgIDNotInEnumFmt = "id must be one of %s"
)

// TreeHandler serves the Tree resource. No tree is ever stored; every
// response is built from the canned catalog.
type TreeHandler struct {
	logger  *slog.Logger
	metrics metrics.Recorder
	newID   func() string
}

// NewTreeHandler creates a new TreeHandler.
func NewTreeHandler(logger *slog.Logger, recorder metrics.Recorder) *TreeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TreeHandler{
		logger:  logger,
		metrics: recorder,
		newID:   func() string { return ulid.Make().String() },
	}
}

// GetTree handles GET /tree/{id}.
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) error {
	id, err := parseTreeID(chi.URLParam(r, ParamID))
	if err != nil {
		return err
	}

	tree := model.SampleTree(id)
	if truthy(r.URL.Query().Get(ParamExtended)) {
		tree = tree.Extended()
	}

	writeJSON(w, http.StatusOK, tree)
	return nil
}

// GetTreeByQueryParam handles GET /treeQueryParam.
// The deprecated identifier parameter is consulted only when id is absent.
func (h *TreeHandler) GetTreeByQueryParam(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	raw := query.Get(ParamID)
	if raw == "" {
		raw = query.Get(ParamIdentifier)
		if raw != "" {
			h.logger.Debug("deprecated parameter used", slog.String("parameter", ParamIdentifier))
		}
	}

	id, err := parseTreeID(raw)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, model.SampleTree(id))
	return nil
}

// GetTreeByHeaderParam handles GET /treeHeaderParam.
func (h *TreeHandler) GetTreeByHeaderParam(w http.ResponseWriter, r *http.Request) error {
	id := model.DefaultTreeID
	if raw := r.Header.Get(TreeIDHeader); raw != "" {
		parsed, err := parseTreeID(raw)
		if err != nil {
			return err
		}
		id = parsed
	}

	writeJSON(w, http.StatusOK, model.SampleTree(id))
	return nil
}

// GetTreeByEnumParam handles GET /treeEnumParam.
// The id must be one of the documented values; an absent id takes the default.
func (h *TreeHandler) GetTreeByEnumParam(w http.ResponseWriter, r *http.Request) error {
	raw := r.URL.Query().Get(ParamID)
	if raw == "" {
		raw = treeEnumParam.Default
	}
	if !treeEnumParam.Allows(raw) {
		return apierr.ValidationFailed(fmt.Sprintf(msgIDNotInEnumFmt, treeEnumParam.EnumList()))
	}

	id, err := parseTreeID(raw)
	if err != nil {
		return err
	}
	tree, ok := model.CatalogTree(id)
	if !ok {
		return apierr.Unexpected(fmt.Sprintf("tree %d is not in the catalog", id))
	}

	writeJSON(w, http.StatusOK, tree)
	return nil
}

// GetTreeByCookieParam handles GET /treeCookieParam.
// The cookie is read but does not affect the response.
func (h *TreeHandler) GetTreeByCookieParam(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(TreeIDCookie); err == nil {
		h.logger.Debug("tree cookie received", slog.Int("length", len(cookie.Value)))
	}

	writeJSON(w, http.StatusOK, model.SampleTree(model.DefaultTreeID))
	return nil
}

// GetTreeByName handles GET /tree/by-name/{name}.
func (h *TreeHandler) GetTreeByName(w http.ResponseWriter, r *http.Request) error {
	name := chi.URLParam(r, ParamName)
	// chi matches on RawPath when it is set, leaving the segment escaped.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return apierr.ValidationFailed(MsgNameMalformed)
		}
		name = unescaped
	}
	if name == "" {
		return apierr.ValidationFailed(MsgNameMalformed)
	}

	tree := model.SampleTree(model.DefaultTreeID)
	tree.Name = name

	writeJSON(w, http.StatusOK, tree)
	return nil
}

// GetTrees handles GET /trees.
func (h *TreeHandler) GetTrees(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, model.TreeList{Trees: model.Catalog()})
	return nil
}

// CreateTree handles POST /tree.
// The payload is validated and discarded; the response is the id of the new tree.
func (h *TreeHandler) CreateTree(w http.ResponseWriter, r *http.Request) error {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		return apierr.ValidationFailed(MsgInvalidBody)
	}

	if err := ValidateInput(payload); err != nil {
		return err
	}

	id := h.newID()
	h.metrics.IncTreeCreated()
	h.logger.Info("tree_created", slog.String("tree_id", id))

	writeText(w, http.StatusOK, id)
	return nil
}

// parseTreeID converts a raw identifier to a tree id.
func parseTreeID(raw string) (int, error) {
	if raw == "" {
		return 0, apierr.ValidationFailed(MsgIDMissing)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.ValidationFailed(MsgIDNotInteger)
	}
	return id, nil
}

// truthy interprets a query flag. Empty means false, boolean literals keep
// their value and any other non-empty text counts as set.
func truthy(raw string) bool {
	if raw == "" {
		return false
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return true
}
