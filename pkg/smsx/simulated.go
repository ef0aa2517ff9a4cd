package smsx

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/safepulse/pkg/idx"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"
)

// Simulated never leaves the process. It logs the message it would have
// sent and reports success, so alerts work without provider credentials.
type Simulated struct{}

func NewSimulated() *Simulated { return &Simulated{} }

func (*Simulated) Name() string { return "simulated" }

func (*Simulated) Send(ctx context.Context, to, body string) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	r := Receipt{Provider: "simulated", MessageID: idx.Prefixed("sim"), Status: StatusSimulated}
	slogx.FromContext(ctx).Info("sms_simulated",
		slog.String("to", to),
		slog.String("message_id", r.MessageID),
		slog.String("body", body),
	)
	return r, nil
}
