package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
)

// HealthHandler godoc
//
//	@Summary		Liveness Check Endpoint
//	@Description	Always answers 200 while the process is serving. The db field reports the last store ping.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	sossdk.HealthResponse	"status, db, uptime, version"
//	@Router			/health [get]
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, _ := health(r, startTime, version, st)
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Answers 503 while the credential store is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	sossdk.HealthResponse	"status, db, uptime, version"
//	@Failure		503	{object}	sossdk.HealthResponse	"status, db, uptime, version - service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := health(r, startTime, version, st)
		code := http.StatusOK
		if !ok {
			res.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, res)
	}
}

func health(r *http.Request, startTime time.Time, version string, st store.Store) (sossdk.HealthResponse, bool) {
	res := sossdk.HealthResponse{
		Status:  "ok",
		DB:      "ok",
		Uptime:  time.Since(startTime).Truncate(time.Second).String(),
		Version: version,
	}

	// Ping errors stay in the log.
	if err := st.Ping(r.Context()); err != nil {
		slogx.FromContext(r.Context()).Warn("store ping failed", "err", err)
		res.DB = "error"
		return res, false
	}
	return res, true
}
