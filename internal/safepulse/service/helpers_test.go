package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/store/drivers/sqlite"
	"github.com/aussiebroadwan/safepulse/pkg/cryptox"
	"github.com/aussiebroadwan/safepulse/pkg/jwtx"
	"github.com/aussiebroadwan/safepulse/pkg/phonex"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-test-secret-test-secret")

func newSessions(t *testing.T, now func() time.Time) *SessionService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	return &SessionService{Signer: signer, Issuer: "safepulse", TTL: jwtx.DefaultSessionTTL, Now: now}
}

// subjectOf verifies token the way the bearer middleware does and returns
// its subject.
func subjectOf(t *testing.T, token string, now func() time.Time) (string, error) {
	t.Helper()

	verifier, err := jwtx.NewVerifierHS256(testSecret, "safepulse", now)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func newUserService(t *testing.T) *UserService {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "svc.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return &UserService{
		Store:    st,
		Hasher:   cryptox.NewPINHasher("pepper"),
		Sessions: newSessions(t, nil),
		Phones:   phonex.NewNormalizer("IN"),
	}
}

func signupInput() SignupInput {
	return SignupInput{
		Name:     "Asha",
		Phone:    "+91 98765 43210",
		PIN:      "1234",
		Contacts: []string{"9123456789", "09000000001"},
	}
}
