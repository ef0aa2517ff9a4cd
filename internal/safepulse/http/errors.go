package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
)

// writeError maps a service error onto the public error vocabulary.
// Anything unrecognized is logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		sossdk.ErrInvalidRequest.WithDescription(verr.Error()).WriteError(w)
	case errors.Is(err, httpx.ErrBadJSON):
		sossdk.ErrInvalidRequest.WithDescription("request body must be a single JSON object with known fields").WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		sossdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		sossdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		sossdk.ErrServerError.WriteError(w)
	}
}

// subject returns the phone the session token was issued to.
func subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	sub, ok := httpx.SubjectFromContext(r.Context())
	if !ok {
		sossdk.ErrUnauthorized.WithDescription("missing session").WriteError(w)
	}
	return sub, ok
}
