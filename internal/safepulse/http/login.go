package http

import (
	"net/http"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
)

type LoginHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges a phone number and PIN for a session token.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sossdk.LoginRequest		true	"phone, pin"
//	@Success		200		{object}	sossdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	sossdk.ErrorResponse	"malformed phone or pin"
//	@Failure		401		{object}	sossdk.ErrorResponse	"wrong pin"
//	@Failure		404		{object}	sossdk.ErrorResponse	"unknown phone"
//	@Failure		500		{object}	sossdk.ErrorResponse	"error, error_description"
//	@Router			/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sossdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.UserService.Login(r.Context(), req.Phone, req.PIN)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(sess))
}
