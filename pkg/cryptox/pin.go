package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PIN length bounds, inclusive.
const (
	MinPINLength = 4
	MaxPINLength = 12
)

// Argon2id parameters for new digests. Existing digests carry their own
// parameters and keep verifying after these change.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	// ErrInvalidPIN is returned for PINs that are not 4 to 12 ASCII digits.
	ErrInvalidPIN = errors.New("pin must be 4-12 digits")

	// ErrMalformedDigest is returned when a stored digest cannot be parsed.
	ErrMalformedDigest = errors.New("malformed pin digest")
)

// ValidatePIN checks the shape of pin without hashing it.
func ValidatePIN(pin string) error {
	if len(pin) < MinPINLength || len(pin) > MaxPINLength {
		return ErrInvalidPIN
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}

// PINHasher turns PINs into salted, peppered Argon2id digests in PHC form:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
type PINHasher struct {
	pepper string
}

// NewPINHasher returns a hasher mixing pepper into every digest. The same
// pepper must be supplied on every boot or existing digests stop verifying.
func NewPINHasher(pepper string) *PINHasher {
	return &PINHasher{pepper: pepper}
}

// Hash validates pin and returns its digest.
func (h *PINHasher) Hash(pin string) (string, error) {
	if err := ValidatePIN(pin); err != nil {
		return "", err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	sum := argon2.IDKey([]byte(pin+h.pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify reports whether pin matches digest. A mismatch is (false, nil);
// an error means the digest itself is unusable.
func (h *PINHasher) Verify(pin, digest string) (bool, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false, ErrMalformedDigest
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}
	if mem == 0 || iters == 0 || par == 0 {
		return false, fmt.Errorf("%w: zero cost parameter", ErrMalformedDigest)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedDigest, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: hash", ErrMalformedDigest)
	}

	got := argon2.IDKey([]byte(pin+h.pepper), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
