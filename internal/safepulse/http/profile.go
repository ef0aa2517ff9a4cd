package http

import (
	"net/http"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
)

type ProfileHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary		Get profile
//	@Description	Returns the stored account for a phone number. The PIN digest is never included.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Param			phone	path		string					true	"Phone number in any accepted format"
//	@Success		200		{object}	sossdk.ProfileResponse	"phone, name, contacts, silent, timestamps"
//	@Failure		400		{object}	sossdk.ErrorResponse	"malformed phone"
//	@Failure		401		{object}	sossdk.ErrorResponse	"missing or invalid session token"
//	@Failure		404		{object}	sossdk.ErrorResponse	"unknown phone"
//	@Router			/profile/{phone} [get]
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.UserService.Profile(r.Context(), r.PathValue("phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResponse(p))
}

// HandleUpdate godoc
//
//	@Summary		Update own profile
//	@Description	Changes name, contacts or silent flag of the account the session belongs to. Absent fields are left alone.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sossdk.UpdateProfileRequest	true	"any of name, contacts, silent"
//	@Success		200		{object}	sossdk.ProfileResponse		"updated profile"
//	@Failure		400		{object}	sossdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	sossdk.ErrorResponse		"missing or invalid session token"
//	@Failure		404		{object}	sossdk.ErrorResponse		"account no longer exists"
//	@Router			/profile [patch]
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	phone, ok := subject(w, r)
	if !ok {
		return
	}

	var req sossdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.UserService.UpdateProfile(r.Context(), phone, service.ProfileUpdate{
		Name:     req.Name,
		Contacts: req.Contacts,
		Silent:   req.Silent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResponse(p))
}

func profileResponse(p domain.Profile) sossdk.ProfileResponse {
	return sossdk.ProfileResponse{
		Phone:     p.Phone,
		Name:      p.Name,
		Contacts:  p.Contacts,
		Silent:    p.Silent,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
