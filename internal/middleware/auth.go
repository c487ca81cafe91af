package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tweesky/treedoc/internal/apierr"
	"github.com/tweesky/treedoc/internal/auth"
	"github.com/tweesky/treedoc/internal/metrics"
)

// AuthConfig holds configuration for the bearer middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// RequireBearer returns a middleware that rejects requests without a
// well-formed bearer credential. The token is not verified against any store;
// accepted tokens are placed in the request context.
func RequireBearer(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ValidateAPIToken(r)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrMissingToken) {
					reason = "missing_token"
				}
				recorder.IncAuthFailure(reason)

				logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				apierr.Write(w, err)
				return
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
