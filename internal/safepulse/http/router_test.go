package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	safehttp "github.com/aussiebroadwan/safepulse/internal/safepulse/http"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store/drivers/sqlite"
	"github.com/aussiebroadwan/safepulse/pkg/cryptox"
	"github.com/aussiebroadwan/safepulse/pkg/jwtx"
	"github.com/aussiebroadwan/safepulse/pkg/phonex"
	"github.com/aussiebroadwan/safepulse/pkg/smsx"
	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
	"github.com/stretchr/testify/require"
)

var secret = []byte("router-secret-router-secret-router")

type fixture struct {
	handler http.Handler
	store   *sqlite.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "http.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, "safepulse", nil)
	require.NoError(t, err)

	phones := phonex.NewNormalizer("IN")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := safehttp.NewRouter(verifier, "test", st, logger)
	r.UserService = &service.UserService{
		Store:    st,
		Hasher:   cryptox.NewPINHasher("pepper"),
		Sessions: &service.SessionService{Signer: signer, Issuer: "safepulse"},
		Phones:   phones,
	}
	r.AlertService = &service.AlertService{Notifier: smsx.NewSimulated(), Phones: phones}
	r.ApplyRoutes()

	return &fixture{handler: r, store: st}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func signupRequest() sossdk.SignupRequest {
	return sossdk.SignupRequest{
		Name:     "Asha",
		Phone:    "+91 98765 43210",
		PIN:      "1234",
		Contacts: []string{"9123456789", "9000000001"},
	}
}

func (f *fixture) signup(t *testing.T) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/signup", "", signupRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[sossdk.SignupResponse](t, rec).AccessToken
}

func TestSignup(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/signup", "", signupRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	res := decode[sossdk.SignupResponse](t, rec)
	require.Equal(t, "created", res.Status)
	require.Equal(t, "bearer", res.TokenType)
	require.NotEmpty(t, res.AccessToken)
	require.Equal(t, int64(86400), res.ExpiresIn)

	again := signupRequest()
	again.Name = "Asha K"
	rec = f.do(t, http.MethodPost, "/signup", "", again)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "updated", decode[sossdk.SignupResponse](t, rec).Status)
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t)

	cases := map[string]any{
		"short pin":     func() sossdk.SignupRequest { r := signupRequest(); r.PIN = "12"; return r }(),
		"one contact":   func() sossdk.SignupRequest { r := signupRequest(); r.Contacts = r.Contacts[:1]; return r }(),
		"bad phone":     func() sossdk.SignupRequest { r := signupRequest(); r.Phone = "12ab"; return r }(),
		"missing name":  func() sossdk.SignupRequest { r := signupRequest(); r.Name = ""; return r }(),
		"not json":      "{",
		"unknown field": `{"name":"a","phone":"9876543210","pin":"1234","contacts":["9123456789","9000000001"],"admin":true}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/signup", "", body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			require.Equal(t, sossdk.ErrorCodeInvalidRequest, decode[sossdk.ErrorResponse](t, rec).Error)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.signup(t)

	rec := f.do(t, http.MethodPost, "/login", "", sossdk.LoginRequest{Phone: "09876543210", PIN: "1234"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotEmpty(t, decode[sossdk.TokenResponse](t, rec).AccessToken)

	rec = f.do(t, http.MethodPost, "/login", "", sossdk.LoginRequest{Phone: "9876543210", PIN: "9999"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, sossdk.ErrorCodeUnauthorized, decode[sossdk.ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodPost, "/login", "", sossdk.LoginRequest{Phone: "9111111111", PIN: "1234"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, sossdk.ErrorCodeNotFound, decode[sossdk.ErrorResponse](t, rec).Error)

	rec = f.do(t, http.MethodPost, "/login", "", sossdk.LoginRequest{Phone: "9876543210", PIN: "12a4"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t)

	rec := f.do(t, http.MethodGet, "/profile/9876543210", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

	rec = f.do(t, http.MethodGet, "/profile/9876543210", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "argon2id")

	p := decode[sossdk.ProfileResponse](t, rec)
	require.Equal(t, "9876543210", p.Phone)
	require.Equal(t, "Asha", p.Name)
	require.Equal(t, []string{"9123456789", "9000000001"}, p.Contacts)

	rec = f.do(t, http.MethodGet, "/profile/9111111111", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t)

	rec := f.do(t, http.MethodPatch, "/profile", token, sossdk.UpdateProfileRequest{Silent: sossdk.Bool(true)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := decode[sossdk.ProfileResponse](t, rec)
	require.True(t, p.Silent)
	require.Equal(t, "Asha", p.Name)

	rec = f.do(t, http.MethodPatch, "/profile", token, sossdk.UpdateProfileRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePIN(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t)

	rec := f.do(t, http.MethodPut, "/profile/pin", token, sossdk.ChangePINRequest{OldPIN: "0000", NewPIN: "5678"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPut, "/profile/pin", token, sossdk.ChangePINRequest{OldPIN: "1234", NewPIN: "5678"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/login", "", sossdk.LoginRequest{Phone: "9876543210", PIN: "5678"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSOS(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t)

	req := sossdk.SOSRequest{
		Name:     "Asha",
		Contacts: []string{"9123456789", "not-a-number", "9000000001"},
		Lat:      sossdk.Float(12.9716),
		Lng:      sossdk.Float(77.5946),
	}

	rec := f.do(t, http.MethodPost, "/sos", "", req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/sos", token, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[sossdk.SOSResponse](t, rec)
	require.Equal(t, "simulated", res.Provider)
	require.True(t, res.Simulated)
	require.Equal(t, 2, res.Sent)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Outcomes, 3)
	require.Contains(t, res.Message, "Asha (9876543210) may be in danger.")
	require.Contains(t, res.Message, "https://maps.google.com/?q=12.9716,77.5946")

	noCoords := req
	noCoords.Lat = nil
	rec = f.do(t, http.MethodPost, "/sos", token, noCoords)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	noContacts := req
	noContacts.Contacts = nil
	rec = f.do(t, http.MethodPost, "/sos", token, noContacts)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreFailureIsOpaque(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t)
	require.NoError(t, f.store.Close())

	for name, rec := range map[string]*httptest.ResponseRecorder{
		"signup":  f.do(t, http.MethodPost, "/signup", "", signupRequest()),
		"login":   f.do(t, http.MethodPost, "/login", "", sossdk.LoginRequest{Phone: "9876543210", PIN: "1234"}),
		"profile": f.do(t, http.MethodGet, "/profile/9876543210", token, nil),
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

			body := decode[sossdk.ErrorResponse](t, rec)
			require.Equal(t, sossdk.ErrorCodeServerError, body.Error)
			require.Equal(t, "internal server error", body.ErrorDescription)
			require.NotContains(t, rec.Body.String(), "sql")
			require.NotContains(t, rec.Body.String(), "closed")
			require.NotContains(t, rec.Body.String(), "get user")
		})
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	h := decode[sossdk.HealthResponse](t, rec)
	require.Equal(t, "ok", h.Status)
	require.Equal(t, "ok", h.DB)
	require.Equal(t, "test", h.Version)

	rec = f.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, f.store.Close())

	rec = f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "error", decode[sossdk.HealthResponse](t, rec).DB)

	rec = f.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", decode[sossdk.HealthResponse](t, rec).Status)
}
