package smsx

import (
	"fmt"
	"net/http"
	"strings"
)

// Provider names accepted by Select.
const (
	ProviderAuto      = "auto"
	ProviderFast2SMS  = "fast2sms"
	ProviderTwilio    = "twilio"
	ProviderSimulated = "simulated"
)

// Settings gathers credentials for every supported provider.
type Settings struct {
	Provider string

	Fast2SMSAPIKey   string
	Fast2SMSEndpoint string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string

	FormatE164 func(string) string
	HTTPClient *http.Client
}

func (s Settings) hasFast2SMS() bool { return s.Fast2SMSAPIKey != "" }

func (s Settings) hasTwilio() bool {
	return s.TwilioAccountSID != "" && s.TwilioAuthToken != "" && s.TwilioFrom != ""
}

// Select builds the notifier named by s.Provider. "auto" prefers the bulk
// gateway, then Twilio. Whenever the chosen provider lacks credentials the
// simulated notifier is returned with fallback set, never an error; only
// an unknown provider name fails.
func Select(s Settings) (n Notifier, fallback bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderAuto:
		switch {
		case s.hasFast2SMS():
			return mustFast2SMS(s), false, nil
		case s.hasTwilio():
			return mustTwilio(s), false, nil
		}
		return NewSimulated(), true, nil

	case ProviderFast2SMS:
		if !s.hasFast2SMS() {
			return NewSimulated(), true, nil
		}
		return mustFast2SMS(s), false, nil

	case ProviderTwilio:
		if !s.hasTwilio() {
			return NewSimulated(), true, nil
		}
		return mustTwilio(s), false, nil

	case ProviderSimulated:
		return NewSimulated(), false, nil

	default:
		return nil, false, fmt.Errorf("smsx: unknown provider %q", s.Provider)
	}
}

// Credentials were checked by the caller, so construction cannot fail.
func mustFast2SMS(s Settings) Notifier {
	f, err := NewFast2SMS(s.Fast2SMSAPIKey, s.Fast2SMSEndpoint, s.HTTPClient)
	if err != nil {
		panic(err)
	}
	return f
}

func mustTwilio(s Settings) Notifier {
	t, err := NewTwilio(TwilioConfig{
		AccountSID: s.TwilioAccountSID,
		AuthToken:  s.TwilioAuthToken,
		From:       s.TwilioFrom,
		FormatTo:   s.FormatE164,
	})
	if err != nil {
		panic(err)
	}
	return t
}
