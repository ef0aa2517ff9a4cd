package smsx

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the slice of the Twilio REST API used here.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Twilio sends one message per recipient through the Messages API.
type Twilio struct {
	api      messageCreator
	from     string
	formatTo func(string) string
}

// TwilioConfig holds account credentials and the sending number.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string

	// FormatTo converts a stored national number into E.164. Nil sends the
	// number unchanged.
	FormatTo func(string) string
}

func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, errors.New("smsx: twilio account sid, auth token and from number are required")
	}

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilio(rest.Api, cfg.From, cfg.FormatTo), nil
}

func newTwilio(api messageCreator, from string, formatTo func(string) string) *Twilio {
	if formatTo == nil {
		formatTo = func(s string) string { return s }
	}
	return &Twilio{api: api, from: from, formatTo: formatTo}
}

func (*Twilio) Name() string { return "twilio" }

type twilioResult struct {
	msg *openapi.ApiV2010Message
	err error
}

// Send creates a single message. The SDK call takes no context, so it
// runs on its own goroutine and Send returns as soon as ctx is done.
func (t *Twilio) Send(ctx context.Context, to, body string) (Receipt, error) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(t.formatTo(to))
	params.SetFrom(t.from)
	params.SetBody(body)

	done := make(chan twilioResult, 1)
	go func() {
		msg, err := t.api.CreateMessage(params)
		done <- twilioResult{msg: msg, err: err}
	}()

	var res twilioResult
	select {
	case <-ctx.Done():
		return Receipt{}, fmt.Errorf("twilio: %w", ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		var rerr *twilioclient.TwilioRestError
		if errors.As(res.err, &rerr) {
			return Receipt{}, &ProviderError{Provider: t.Name(), StatusCode: rerr.Status, Message: rerr.Message}
		}
		return Receipt{}, fmt.Errorf("twilio: %w", res.err)
	}

	r := Receipt{Provider: t.Name(), Status: StatusQueued}
	if res.msg != nil {
		if res.msg.Sid != nil {
			r.MessageID = *res.msg.Sid
		}
		if res.msg.Status != nil {
			r.Status = *res.msg.Status
		}
	}
	return r, nil
}
