// Package phonex normalizes user-entered phone numbers into the bare
// national digit strings used as account keys and SMS destinations.
package phonex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Accepted length of a normalized number, in digits.
const (
	MinDigits = 7
	MaxDigits = 15
)

var (
	ErrEmpty   = errors.New("phone number is empty")
	ErrInvalid = errors.New("phone number is invalid")

	// ErrForeign is returned for numbers carrying another country's code.
	// Normalized numbers drop the country code, so they cannot be kept.
	ErrForeign = fmt.Errorf("%w: country code outside the default region", ErrInvalid)
)

// Normalizer parses numbers relative to a default region.
type Normalizer struct {
	region      string
	countryCode int
}

// NewNormalizer returns a Normalizer for the ISO 3166 region (e.g. "IN").
// Unknown regions fall back to "IN".
func NewNormalizer(region string) *Normalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	cc := phonenumbers.GetCountryCodeForRegion(region)
	if cc == 0 {
		region = "IN"
		cc = phonenumbers.GetCountryCodeForRegion(region)
	}
	return &Normalizer{region: region, countryCode: cc}
}

// Region reports the default region in use.
func (n *Normalizer) Region() string { return n.region }

// Normalize strips formatting, any country code and trunk zeros from raw.
//
//	"+91 98765-43210" -> "9876543210"
//	"09876543210"     -> "9876543210"
func (n *Normalizer) Normalize(raw string) (string, error) {
	cleaned, err := clean(raw)
	if err != nil {
		return "", err
	}

	digits := ""
	if num, perr := phonenumbers.Parse(cleaned, n.region); perr == nil {
		if int(num.GetCountryCode()) != n.countryCode {
			return "", ErrForeign
		}
		digits = phonenumbers.GetNationalSignificantNumber(num)
	}
	if digits == "" {
		digits = strings.TrimLeft(strings.TrimPrefix(cleaned, "+"), "0")
	}

	if len(digits) < MinDigits || len(digits) > MaxDigits {
		return "", ErrInvalid
	}
	return digits, nil
}

// E164 renders a normalized national number in international form for
// providers that require it.
func (n *Normalizer) E164(national string) string {
	return "+" + strconv.Itoa(n.countryCode) + national
}

// clean keeps digits and a single leading plus, and rejects anything that
// is not common phone punctuation.
func clean(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmpty
	}

	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ', r == '-', r == '(', r == ')', r == '.':
		default:
			return "", ErrInvalid
		}
	}

	out := b.String()
	if strings.TrimPrefix(out, "+") == "" {
		return "", ErrInvalid
	}
	return out, nil
}
