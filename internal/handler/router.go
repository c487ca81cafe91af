package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tweesky/treedoc/internal/apidoc"
	"github.com/tweesky/treedoc/internal/apierr"
	"github.com/tweesky/treedoc/internal/config"
	"github.com/tweesky/treedoc/internal/metrics"
	"github.com/tweesky/treedoc/internal/middleware"
)

// Fixed paths served next to the documented operations.
const (
	DocumentPath = "/openapi.json"
	DocsPrefix   = "/apidocs"
	HealthPath   = "/healthz"
	MetricsPath  = "/metrics"
)

// ErrUnboundOperation is returned when a documented operation has no handler.
var ErrUnboundOperation = errors.New("operation has no handler")

// RouterConfig carries the dependencies of NewRouter.
type RouterConfig struct {
	Config   *config.Config
	Registry apidoc.Registry
	Document *openapi3.T
	Logger   *slog.Logger
	Metrics  metrics.Recorder
	// MetricsHandler serves /metrics when set and metrics are enabled.
	MetricsHandler http.Handler
}

// Bindings maps every operation ID to its implementation.
func Bindings(tree *TreeHandler, info *InfoHandler) map[string]apierr.HandlerFunc {
	return map[string]apierr.HandlerFunc{
		OpGetVersion:           info.GetVersion,
		OpGetMarkdown:          info.GetMarkdown,
		OpGetRandomNumber:      info.GetRandomNumber,
		OpGetTree:              tree.GetTree,
		OpGetTreeByQueryParam:  tree.GetTreeByQueryParam,
		OpGetTreeByHeaderParam: tree.GetTreeByHeaderParam,
		OpGetTreeByEnumParam:   tree.GetTreeByEnumParam,
		OpGetTreeByCookieParam: tree.GetTreeByCookieParam,
		OpGetTreeByName:        tree.GetTreeByName,
		OpGetTrees:             tree.GetTrees,
		OpCreateTree:           tree.CreateTree,
	}
}

// NewRouter configures the chi router with every registered operation and
// the documentation endpoints. Bearer enforcement is derived from each
// descriptor so the published security requirements match runtime behavior.
func NewRouter(rc RouterConfig) (*chi.Mux, error) {
	cfg := rc.Config
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := rc.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if cfg == nil {
		return nil, fmt.Errorf("new router: config is required")
	}
	if rc.Document == nil {
		return nil, fmt.Errorf("new router: openapi document is required")
	}

	docHandler, err := apidoc.NewDocumentHandler(rc.Document)
	if err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	h := New()
	healthHandler := NewHealthHandler()
	bindings := Bindings(NewTreeHandler(logger, recorder), NewInfoHandler(recorder))

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
		DocsPrefix:    DocsPrefix,
	}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.GetCORSAllowedOrigins())))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health endpoint (no auth required)
	r.Get(HealthPath, healthHandler.Healthz)

	if cfg.MetricsEnabled && rc.MetricsHandler != nil {
		r.Method(http.MethodGet, MetricsPath, rc.MetricsHandler)
	}

	// API description and explorer (no auth required)
	r.Method(http.MethodGet, DocumentPath, docHandler)
	if cfg.DocsEnabled {
		r.Get(DocsPrefix, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, DocsPrefix+"/index.html", http.StatusMovedPermanently)
		})
		r.Method(http.MethodGet, DocsPrefix+"/*", apidoc.UIHandler(DocumentPath))
	}

	requireBearer := middleware.RequireBearer(middleware.AuthConfig{
		Logger:  logger,
		Metrics: recorder,
	})

	// Documented operations
	for _, op := range rc.Registry.Operations() {
		fn, ok := bindings[op.ID]
		if !ok {
			return nil, fmt.Errorf("new router: %w: %s", ErrUnboundOperation, op.ID)
		}
		var endpoint http.Handler = apierr.Handler(fn)
		if op.RequiresAuth {
			endpoint = requireBearer(endpoint)
		}
		r.Method(op.Method, op.Path, endpoint)
	}

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r, nil
}
