package http

import (
	"net/http"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
)

type ChangePINHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Change PIN
//	@Description	Replaces the PIN of the session's account. The current PIN must be supplied.
//	@Description	Sessions issued before the change stay valid until they expire.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	sossdk.ChangePINRequest	true	"old_pin, new_pin"
//	@Success		204
//	@Failure		400	{object}	sossdk.ErrorResponse	"malformed pin"
//	@Failure		401	{object}	sossdk.ErrorResponse	"wrong current pin or invalid session token"
//	@Failure		404	{object}	sossdk.ErrorResponse	"account no longer exists"
//	@Router			/profile/pin [put]
func (h *ChangePINHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	phone, ok := subject(w, r)
	if !ok {
		return
	}

	var req sossdk.ChangePINRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.UserService.ChangePIN(r.Context(), phone, req.OldPIN, req.NewPIN); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
