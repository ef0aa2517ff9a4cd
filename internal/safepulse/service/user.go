package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
	"github.com/aussiebroadwan/safepulse/pkg/cryptox"
	"github.com/aussiebroadwan/safepulse/pkg/phonex"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"
)

// Signup outcomes.
const (
	StatusCreated = "created"
	StatusUpdated = "updated"
)

const maxNameLength = 100

type UserService struct {
	Store    store.Store
	Hasher   *cryptox.PINHasher
	Sessions *SessionService
	Phones   *phonex.Normalizer
}

type SignupInput struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Phone    string   `json:"phone" validate:"required"`
	PIN      string   `json:"pin" validate:"required"`
	Contacts []string `json:"contacts" validate:"required,min=2,max=20"`
	Silent   bool     `json:"silent"`
}

type SignupResult struct {
	Status  string
	Session *Session
	Profile domain.Profile
}

// Signup creates the account for a phone number, or overwrites name, PIN,
// contacts and silent flag when it already exists, then opens a session.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	phone, err := s.phone(in.Phone)
	if err != nil {
		return nil, err
	}
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contacts(in.Contacts)
	if err != nil {
		return nil, err
	}

	digest, err := s.Hasher.Hash(in.PIN)
	if errors.Is(err, cryptox.ErrInvalidPIN) {
		return nil, invalid("pin", "must be 4-12 digits")
	}
	if err != nil {
		return nil, dependency("hash pin", err)
	}

	u, created, err := s.Store.Users().UpsertUser(ctx, domain.User{
		Phone:     phone,
		Name:      name,
		PINDigest: digest,
		Contacts:  contacts,
		Silent:    in.Silent,
	})
	if err != nil {
		return nil, dependency("upsert user", err)
	}

	sess, err := s.Sessions.Issue(phone)
	if err != nil {
		return nil, err
	}

	status := StatusUpdated
	if created {
		status = StatusCreated
	}
	slogx.FromContext(ctx).Info("signup", "user_id", u.ID, "status", status)

	return &SignupResult{Status: status, Session: sess, Profile: u.Profile()}, nil
}

// Login checks a phone and PIN pair and opens a session.
func (s *UserService) Login(ctx context.Context, rawPhone, pin string) (*Session, error) {
	phone, err := s.phone(rawPhone)
	if err != nil {
		return nil, err
	}
	if err := cryptox.ValidatePIN(pin); err != nil {
		return nil, invalid("pin", "must be 4-12 digits")
	}

	u, err := s.lookup(ctx, s.Store, phone)
	if err != nil {
		return nil, err
	}

	ok, err := s.Hasher.Verify(pin, u.PINDigest)
	if err != nil {
		return nil, dependency("verify pin", err)
	}
	if !ok {
		slogx.FromContext(ctx).Warn("login rejected", "user_id", u.ID)
		return nil, ErrUnauthorized
	}

	return s.Sessions.Issue(phone)
}

// Profile returns the stored account for a phone number.
func (s *UserService) Profile(ctx context.Context, rawPhone string) (domain.Profile, error) {
	phone, err := s.phone(rawPhone)
	if err != nil {
		return domain.Profile{}, err
	}

	u, err := s.lookup(ctx, s.Store, phone)
	if err != nil {
		return domain.Profile{}, err
	}
	return u.Profile(), nil
}

// ProfileUpdate changes only the fields that are set.
type ProfileUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Contacts []string `json:"contacts,omitempty" validate:"omitempty,min=2,max=20"`
	Silent   *bool    `json:"silent,omitempty"`
}

// UpdateProfile applies a partial update to the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, phone string, in ProfileUpdate) (domain.Profile, error) {
	if err := checkStruct(in); err != nil {
		return domain.Profile{}, err
	}
	if in.Name == nil && in.Contacts == nil && in.Silent == nil {
		return domain.Profile{}, invalid("", "nothing to update")
	}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := s.lookup(ctx, tx, phone)
		if err != nil {
			return err
		}

		if in.Name != nil {
			if u.Name, err = cleanName(*in.Name); err != nil {
				return err
			}
		}
		if in.Contacts != nil {
			if u.Contacts, err = s.contacts(in.Contacts); err != nil {
				return err
			}
		}
		if in.Silent != nil {
			u.Silent = *in.Silent
		}

		out, err = tx.Users().UpdateProfile(ctx, u.Phone, u.Name, u.Contacts, u.Silent)
		if err != nil {
			return dependency("update profile", err)
		}
		return nil
	})
	if err != nil {
		return domain.Profile{}, wrapTx(err)
	}
	return out.Profile(), nil
}

// ChangePIN replaces the caller's PIN after checking the current one.
func (s *UserService) ChangePIN(ctx context.Context, phone, oldPIN, newPIN string) error {
	if err := cryptox.ValidatePIN(oldPIN); err != nil {
		return invalid("old_pin", "must be 4-12 digits")
	}
	if err := cryptox.ValidatePIN(newPIN); err != nil {
		return invalid("new_pin", "must be 4-12 digits")
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := s.lookup(ctx, tx, phone)
		if err != nil {
			return err
		}

		ok, err := s.Hasher.Verify(oldPIN, u.PINDigest)
		if err != nil {
			return dependency("verify pin", err)
		}
		if !ok {
			return ErrUnauthorized
		}

		digest, err := s.Hasher.Hash(newPIN)
		if err != nil {
			return dependency("hash pin", err)
		}
		if err := tx.Users().UpdatePINDigest(ctx, u.Phone, digest); err != nil {
			return dependency("update pin", err)
		}
		return nil
	})
	if err != nil {
		return wrapTx(err)
	}

	slogx.FromContext(ctx).Info("pin changed")
	return nil
}

func (s *UserService) lookup(ctx context.Context, st store.Store, phone string) (domain.User, error) {
	u, err := st.Users().GetUserByPhone(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, dependency("get user", err)
	}
	return u, nil
}

func (s *UserService) phone(raw string) (string, error) {
	p, err := s.Phones.Normalize(raw)
	if err != nil {
		return "", invalid("phone", "%s", err.Error())
	}
	return p, nil
}

// contacts drops blank entries and entries that are not phone numbers,
// normalizes the rest and collapses duplicates, keeping first-seen order.
func (s *UserService) contacts(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, c := range raw {
		if strings.TrimSpace(c) == "" {
			continue
		}
		n, err := s.Phones.Normalize(c)
		if err != nil {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	if len(out) < domain.MinContacts {
		return nil, invalid("contacts", "at least %d distinct valid phone numbers are required", domain.MinContacts)
	}
	return out, nil
}

func cleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("name", "is required")
	}
	if len([]rune(name)) > maxNameLength {
		return "", invalid("name", "must be at most %d characters", maxNameLength)
	}
	return name, nil
}

// wrapTx passes domain errors through and marks anything else, such as a
// failed commit, as a dependency failure.
func wrapTx(err error) error {
	var (
		verr *ValidationError
		derr *DependencyError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &derr),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrUnauthorized):
		return err
	default:
		return dependency("transaction", err)
	}
}
