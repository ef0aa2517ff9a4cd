package http

import (
	"net/http"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
)

type SOSHandler struct {
	AlertService *service.AlertService
}

// ServeHTTP godoc
//
//	@Summary		Trigger SOS
//	@Description	Texts the sender's location to every listed contact. Per-contact failures are reported in
//	@Description	the result and do not fail the request. No account lookup happens on this path.
//	@Tags			Alerts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sossdk.SOSRequest		true	"contacts, lat, lng and optional sender name"
//	@Success		200		{object}	sossdk.SOSResponse		"provider, sent, failed, skipped, one outcome per contact"
//	@Failure		400		{object}	sossdk.ErrorResponse	"missing contacts or coordinates"
//	@Failure		401		{object}	sossdk.ErrorResponse	"missing or invalid session token"
//	@Router			/sos [post]
func (h *SOSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	phone, ok := subject(w, r)
	if !ok {
		return
	}

	var req sossdk.SOSRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AlertService.Dispatch(r.Context(), domain.Alert{
		SenderPhone: phone,
		SenderName:  req.Name,
		Contacts:    req.Contacts,
		Latitude:    req.Lat,
		Longitude:   req.Lng,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := sossdk.SOSResponse{
		Provider:  res.Provider,
		Simulated: res.Simulated,
		Message:   res.Message,
		Sent:      res.Sent,
		Failed:    res.Failed,
		Skipped:   res.Skipped,
		Outcomes:  make([]sossdk.SOSOutcome, 0, len(res.Outcomes)),
	}
	for _, o := range res.Outcomes {
		out.Outcomes = append(out.Outcomes, sossdk.SOSOutcome{
			Contact:    o.Contact,
			Status:     o.Status,
			ProviderID: o.ProviderID,
			Error:      o.Error,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
