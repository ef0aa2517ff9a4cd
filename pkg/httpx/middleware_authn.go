package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/safepulse/pkg/jwtx"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token and stores its claims in
// the request context. Failures answer 401 with an RFC 6750 challenge.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			scheme, raw, ok := strings.Cut(authz, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(strings.TrimSpace(raw))
			if err != nil {
				desc := "token verification failed"
				if errors.Is(err, jwtx.ErrExpired) {
					desc = "token expired"
				}
				slogx.FromContext(ctx).Warn("jwt verify failed", "err", err)
				writeBearerError(w, desc)
				return
			}

			ctx = slogx.With(contextWithAuth(ctx, claims), "sub", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{Error: "unauthorized", ErrorDescription: desc})
}
