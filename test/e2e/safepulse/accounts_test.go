package safepulse_test

import (
	"testing"

	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
	"github.com/stretchr/testify/require"
)

// TestAccountLifecycle walks signup, login, profile read, profile update and
// PIN change against a running container.
func TestAccountLifecycle(t *testing.T) {
	c := setupContainer(t)
	ctx := t.Context()

	token := signup(t, c)

	again, err := c.Signup(ctx, sossdk.SignupRequest{
		Name:     "Asha K",
		Phone:    "09876543210",
		PIN:      userPIN,
		Contacts: userContacts,
	})
	require.NoError(t, err)
	require.Equal(t, "updated", again.Status)

	login, err := c.Login(ctx, "9876543210", userPIN)
	require.NoError(t, err)
	require.Equal(t, "bearer", login.TokenType)
	require.Equal(t, int64(86400), login.ExpiresIn)

	p, err := c.Profile(ctx, token, "+919876543210")
	require.NoError(t, err)
	require.Equal(t, "9876543210", p.Phone)
	require.Equal(t, "Asha K", p.Name)
	require.Equal(t, userContacts, p.Contacts)

	p, err = c.UpdateProfile(ctx, login.AccessToken, sossdk.UpdateProfileRequest{Silent: sossdk.Bool(true)})
	require.NoError(t, err)
	require.True(t, p.Silent)

	require.NoError(t, c.ChangePIN(ctx, login.AccessToken, userPIN, "987654"))

	_, err = c.Login(ctx, "9876543210", userPIN)
	requireAPIError(t, err, sossdk.ErrUnauthorized)

	_, err = c.Login(ctx, "9876543210", "987654")
	require.NoError(t, err)
}

func TestAccountErrors(t *testing.T) {
	c := setupContainer(t)
	ctx := t.Context()
	token := signup(t, c)

	_, err := c.Login(ctx, "9111111111", userPIN)
	requireAPIError(t, err, sossdk.ErrNotFound)

	_, err = c.Login(ctx, "9876543210", "0000")
	requireAPIError(t, err, sossdk.ErrUnauthorized)

	_, err = c.Signup(ctx, sossdk.SignupRequest{Name: "X", Phone: "9222222222", PIN: "1", Contacts: userContacts})
	requireAPIError(t, err, sossdk.ErrInvalidRequest)

	_, err = c.Profile(ctx, "not-a-token", "9876543210")
	requireAPIError(t, err, sossdk.ErrUnauthorized)

	_, err = c.Profile(ctx, token, "9111111111")
	requireAPIError(t, err, sossdk.ErrNotFound)
}
