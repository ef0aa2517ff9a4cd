package http

import (
	"net/http"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
)

type SignupHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Sign up
//	@Description	Creates an account for the phone number, or overwrites name, PIN, contacts and silent flag when
//	@Description	the number is already registered. Returns a session token either way.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sossdk.SignupRequest	true	"name, phone, 4-12 digit pin, at least two contacts"
//	@Success		201		{object}	sossdk.SignupResponse	"status, access_token, token_type, expires_in"
//	@Failure		400		{object}	sossdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	sossdk.ErrorResponse	"error, error_description"
//	@Router			/signup [post]
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sossdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.UserService.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Phone:    req.Phone,
		PIN:      req.PIN,
		Contacts: req.Contacts,
		Silent:   req.Silent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sossdk.SignupResponse{
		Status:        res.Status,
		TokenResponse: tokenResponse(res.Session),
	})
}

func tokenResponse(s *service.Session) sossdk.TokenResponse {
	return sossdk.TokenResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresIn:   s.ExpiresIn,
	}
}
