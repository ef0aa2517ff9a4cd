// Package smsx sends SOS text messages through a bulk SMS gateway, a
// per-recipient messaging API, or a simulated sender that only logs.
package smsx

import (
	"context"
	"errors"
	"fmt"
)

// Receipt statuses.
const (
	StatusQueued    = "queued"
	StatusSimulated = "simulated"
)

// Receipt is a provider's acknowledgement for one send call.
type Receipt struct {
	Provider  string
	MessageID string
	Status    string
}

// Notifier delivers a text message to a single recipient.
type Notifier interface {
	Name() string
	Send(ctx context.Context, to, body string) (Receipt, error)
}

// BatchNotifier is implemented by gateways that accept every recipient in
// one request and report a single result for all of them.
type BatchNotifier interface {
	Notifier
	SendBatch(ctx context.Context, to []string, body string) (Receipt, error)
}

// ErrProvider is matched by every ProviderError.
var ErrProvider = errors.New("smsx: provider rejected message")

// ProviderError carries the provider's own failure detail.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }
