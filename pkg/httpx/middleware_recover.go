package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/aussiebroadwan/safepulse/pkg/slogx"
)

// RecoverMiddleware turns a handler panic into a generic 500.
func RecoverMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slogx.FromContext(r.Context()).Error("panic in handler",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				WriteJSON(w, http.StatusInternalServerError, ErrorBody{
					Error:            "server_error",
					ErrorDescription: "internal server error",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
