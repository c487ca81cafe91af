package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/tweesky/treedoc/internal/apierr"
)

// Recoverer is a middleware that recovers from panics.
// It logs the panic and answers with the JSON 500 body used for every
// unexpected failure, so no unstructured error reaches the caller.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				apierr.Write(w, apierr.Unexpected(apierr.DefaultUnexpectedMessage))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
