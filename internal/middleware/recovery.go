package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a panicking handler into a 500 JSON response.
// Stack traces are only attached to the log line when verbose is set.
func Recoverer(logger *slog.Logger, verbose bool) func(http.Handler) http.Handler {
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

				attrs := []any{
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
				}
				if verbose {
					attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				}
				logger.ErrorContext(r.Context(), "panic_recovered", attrs...)

				writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
