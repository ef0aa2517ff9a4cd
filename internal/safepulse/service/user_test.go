package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupCreatesThenOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)

	first, err := s.Signup(ctx, signupInput())
	require.NoError(t, err)
	require.Equal(t, StatusCreated, first.Status)
	require.Equal(t, "9876543210", first.Profile.Phone)
	require.Equal(t, []string{"9123456789", "9000000001"}, first.Profile.Contacts)
	require.Equal(t, TokenTypeBearer, first.Session.TokenType)

	phone, err := subjectOf(t, first.Session.AccessToken, nil)
	require.NoError(t, err)
	require.Equal(t, "9876543210", phone)

	in := signupInput()
	in.Name = "  Asha Kumar "
	in.PIN = "5678"
	in.Silent = true
	second, err := s.Signup(ctx, in)
	require.NoError(t, err)
	require.Equal(t, StatusUpdated, second.Status)

	n, err := s.Store.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	p, err := s.Profile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "Asha Kumar", p.Name)
	require.True(t, p.Silent)

	_, err = s.Login(ctx, "9876543210", "1234")
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = s.Login(ctx, "9876543210", "5678")
	require.NoError(t, err)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)

	tests := []struct {
		name  string
		edit  func(*SignupInput)
		field string
	}{
		{"one contact", func(in *SignupInput) { in.Contacts = []string{"9123456789"} }, "contacts"},
		{"blank contacts filtered", func(in *SignupInput) { in.Contacts = []string{"9123456789", "  ", ""} }, "contacts"},
		{"duplicate contacts collapse", func(in *SignupInput) { in.Contacts = []string{"9123456789", "+91 91234 56789"} }, "contacts"},
		{"garbage contact", func(in *SignupInput) { in.Contacts = []string{"9123456789", "call mom"} }, "contacts"},
		{"foreign contact", func(in *SignupInput) { in.Contacts = []string{"9123456789", "+1 415 555 2671"} }, "contacts"},
		{"foreign phone", func(in *SignupInput) { in.Phone = "+44 20 7946 0958" }, "phone"},
		{"short pin", func(in *SignupInput) { in.PIN = "123" }, "pin"},
		{"alpha pin", func(in *SignupInput) { in.PIN = "12ab" }, "pin"},
		{"missing pin", func(in *SignupInput) { in.PIN = "" }, "pin"},
		{"blank name", func(in *SignupInput) { in.Name = "   " }, "name"},
		{"bad phone", func(in *SignupInput) { in.Phone = "12" }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := signupInput()
			tt.edit(&in)

			_, err := s.Signup(ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}

	n, err := s.Store.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSignupDropsUnusableContacts(t *testing.T) {
	s := newUserService(t)

	in := signupInput()
	in.Contacts = []string{"9123456789", "9000000001", "n/a", "+1 415 555 2671"}

	res, err := s.Signup(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, StatusCreated, res.Status)
	require.Equal(t, []string{"9123456789", "9000000001"}, res.Profile.Contacts)
}

func TestLoginOutcomes(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)

	_, err := s.Signup(ctx, signupInput())
	require.NoError(t, err)

	t.Run("unknown phone", func(t *testing.T) {
		_, err := s.Login(ctx, "9000000009", "1234")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong pin", func(t *testing.T) {
		_, err := s.Login(ctx, "9876543210", "4321")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("correct pin", func(t *testing.T) {
		sess, err := s.Login(ctx, "09876543210", "1234")
		require.NoError(t, err)

		phone, err := subjectOf(t, sess.AccessToken, nil)
		require.NoError(t, err)
		require.Equal(t, "9876543210", phone)
		require.EqualValues(t, 86400, sess.ExpiresIn)
	})

	t.Run("malformed pin", func(t *testing.T) {
		_, err := s.Login(ctx, "9876543210", "12")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestProfileNotFound(t *testing.T) {
	_, err := newUserService(t).Profile(context.Background(), "9000000009")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)
	_, err := s.Signup(ctx, signupInput())
	require.NoError(t, err)

	silent := true
	p, err := s.UpdateProfile(ctx, "9876543210", ProfileUpdate{Silent: &silent})
	require.NoError(t, err)
	require.True(t, p.Silent)
	require.Equal(t, "Asha", p.Name)
	require.Equal(t, []string{"9123456789", "9000000001"}, p.Contacts)

	name := "Asha R"
	p, err = s.UpdateProfile(ctx, "9876543210", ProfileUpdate{Name: &name, Contacts: []string{"9111111111", "9222222222", "9333333333"}})
	require.NoError(t, err)
	require.Equal(t, "Asha R", p.Name)
	require.Len(t, p.Contacts, 3)

	var verr *ValidationError
	_, err = s.UpdateProfile(ctx, "9876543210", ProfileUpdate{Contacts: []string{"9111111111", " "}})
	require.ErrorAs(t, err, &verr)

	_, err = s.UpdateProfile(ctx, "9876543210", ProfileUpdate{})
	require.ErrorAs(t, err, &verr)

	_, err = s.UpdateProfile(ctx, "9000000009", ProfileUpdate{Silent: &silent})
	require.ErrorIs(t, err, ErrNotFound)

	p, err = s.Profile(ctx, "9876543210")
	require.NoError(t, err)
	require.Len(t, p.Contacts, 3)
}

func TestChangePIN(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t)
	_, err := s.Signup(ctx, signupInput())
	require.NoError(t, err)

	require.ErrorIs(t, s.ChangePIN(ctx, "9876543210", "0000", "5555"), ErrUnauthorized)

	var verr *ValidationError
	require.ErrorAs(t, s.ChangePIN(ctx, "9876543210", "1234", "55"), &verr)
	require.Equal(t, "new_pin", verr.Field)

	require.NoError(t, s.ChangePIN(ctx, "9876543210", "1234", "5555"))

	_, err = s.Login(ctx, "9876543210", "1234")
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = s.Login(ctx, "9876543210", "5555")
	require.NoError(t, err)

	require.ErrorIs(t, s.ChangePIN(ctx, "9000000009", "1234", "5555"), ErrNotFound)
}

func TestSignupStoreFailureIsDependencyError(t *testing.T) {
	s := newUserService(t)
	require.NoError(t, s.Store.Close())

	_, err := s.Signup(context.Background(), signupInput())
	var derr *DependencyError
	require.ErrorAs(t, err, &derr)
}
