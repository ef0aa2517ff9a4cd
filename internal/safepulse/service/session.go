package service

import (
	"time"

	"github.com/aussiebroadwan/safepulse/pkg/jwtx"
)

const TokenTypeBearer = "bearer"

// Session is an issued access token.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds
	ExpiresAt   time.Time
}

// SessionService mints stateless session tokens. Tokens cannot be
// revoked; they lapse after TTL. The bearer middleware checks them with a
// jwtx.Verifier built from the same secret and issuer.
type SessionService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Issue signs a token whose subject is phone.
func (s *SessionService) Issue(phone string) (*Session, error) {
	now := s.now()
	claims := jwtx.NewSessionClaims(phone, s.Issuer, s.ttl(), now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, dependency("sign session", err)
	}

	return &Session{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(s.ttl() / time.Second),
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
