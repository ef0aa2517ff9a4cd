package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
	"github.com/aussiebroadwan/safepulse/pkg/phonex"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"
	"github.com/aussiebroadwan/safepulse/pkg/smsx"
)

const (
	DefaultSendTimeout = 10 * time.Second
	DefaultMaxParallel = 4
	maxAlertContacts   = 20
)

// AlertService fans an SOS out to emergency contacts. It never touches the
// credential store.
type AlertService struct {
	Notifier    smsx.Notifier
	Phones      *phonex.Normalizer
	Timeout     time.Duration // per outbound call
	MaxParallel int
}

// Dispatch validates the alert, sends one message to every usable contact
// and reports an outcome per contact. Provider failures are recorded in
// the result; only invalid input is returned as an error.
func (s *AlertService) Dispatch(ctx context.Context, a domain.Alert) (*domain.DispatchResult, error) {
	lat, lng, err := coordinates(a.Latitude, a.Longitude)
	if err != nil {
		return nil, err
	}
	if len(a.Contacts) == 0 {
		return nil, invalid("contacts", "is required")
	}
	if len(a.Contacts) > maxAlertContacts {
		return nil, invalid("contacts", "allows at most %d entries", maxAlertContacts)
	}

	res := &domain.DispatchResult{
		Provider:  s.Notifier.Name(),
		Simulated: s.Notifier.Name() == smsx.ProviderSimulated,
		Message:   BuildMessage(strings.TrimSpace(a.SenderName), a.SenderPhone, lat, lng),
	}

	// targets indexes into res.Outcomes for every contact worth sending to.
	var (
		targets []int
		numbers []string
		seen    = make(map[string]struct{}, len(a.Contacts))
	)
	for _, raw := range a.Contacts {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := s.Phones.Normalize(raw)
		if err != nil {
			res.Outcomes = append(res.Outcomes, domain.Outcome{
				Contact: raw, Status: domain.OutcomeInvalid, Error: err.Error(),
			})
			continue
		}
		if _, dup := seen[n]; dup {
			res.Outcomes = append(res.Outcomes, domain.Outcome{
				Contact: raw, Status: domain.OutcomeDuplicate,
			})
			continue
		}
		seen[n] = struct{}{}
		targets = append(targets, len(res.Outcomes))
		numbers = append(numbers, n)
		res.Outcomes = append(res.Outcomes, domain.Outcome{Contact: n})
	}
	if len(numbers) == 0 {
		return nil, invalid("contacts", "no valid phone numbers")
	}

	if batch, ok := s.Notifier.(smsx.BatchNotifier); ok {
		s.sendBatch(ctx, batch, numbers, res, targets)
	} else {
		s.sendEach(ctx, numbers, res, targets)
	}

	for _, o := range res.Outcomes {
		switch o.Status {
		case domain.OutcomeSent, domain.OutcomeSimulated:
			res.Sent++
		case domain.OutcomeDuplicate:
			res.Skipped++
		default:
			res.Failed++
		}
	}

	slogx.FromContext(ctx).Info("sos_dispatched",
		"provider", res.Provider,
		"sent", res.Sent,
		"failed", res.Failed,
		"skipped", res.Skipped,
	)
	return res, nil
}

func (s *AlertService) sendBatch(
	ctx context.Context,
	n smsx.BatchNotifier,
	numbers []string,
	res *domain.DispatchResult,
	targets []int,
) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	r, err := n.SendBatch(cctx, numbers, res.Message)
	for _, i := range targets {
		res.Outcomes[i] = outcome(ctx, res.Outcomes[i].Contact, r, err)
	}
}

// sendEach sends per contact on a bounded group. Workers never return an
// error so one failure cannot cancel its siblings.
func (s *AlertService) sendEach(ctx context.Context, numbers []string, res *domain.DispatchResult, targets []int) {
	var g errgroup.Group
	g.SetLimit(s.maxParallel())

	for k, i := range targets {
		to := numbers[k]
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, s.timeout())
			defer cancel()

			r, err := s.Notifier.Send(cctx, to, res.Message)
			res.Outcomes[i] = outcome(ctx, to, r, err)
			return nil
		})
	}
	_ = g.Wait()
}

func outcome(ctx context.Context, contact string, r smsx.Receipt, err error) domain.Outcome {
	if err == nil {
		status := domain.OutcomeSent
		if r.Status == smsx.StatusSimulated {
			status = domain.OutcomeSimulated
		}
		return domain.Outcome{Contact: contact, Status: status, ProviderID: r.MessageID}
	}

	slogx.FromContext(ctx).Warn("sos_send_failed", "contact", contact, "err", err)
	return domain.Outcome{Contact: contact, Status: domain.OutcomeFailed, Error: describe(err)}
}

// describe keeps provider detail but hides transport internals.
func describe(err error) string {
	var perr *smsx.ProviderError
	switch {
	case errors.As(err, &perr):
		return perr.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "provider timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return "provider unreachable"
	}
}

func (s *AlertService) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultSendTimeout
	}
	return s.Timeout
}

func (s *AlertService) maxParallel() int {
	if s.MaxParallel <= 0 {
		return DefaultMaxParallel
	}
	return s.MaxParallel
}

func coordinates(lat, lng *float64) (float64, float64, error) {
	if lat == nil {
		return 0, 0, invalid("lat", "is required")
	}
	if lng == nil {
		return 0, 0, invalid("lng", "is required")
	}
	if math.IsNaN(*lat) || *lat < -90 || *lat > 90 {
		return 0, 0, invalid("lat", "must be between -90 and 90")
	}
	if math.IsNaN(*lng) || *lng < -180 || *lng > 180 {
		return 0, 0, invalid("lng", "must be between -180 and 180")
	}
	return *lat, *lng, nil
}

// BuildMessage renders the SOS text. The identity line is dropped when
// neither name nor phone is known.
func BuildMessage(name, phone string, lat, lng float64) string {
	var b strings.Builder
	b.WriteString("SOS ALERT\n")

	switch {
	case name != "" && phone != "":
		b.WriteString(name + " (" + phone + ") may be in danger.\n")
	case name != "":
		b.WriteString(name + " may be in danger.\n")
	case phone != "":
		b.WriteString(phone + " may be in danger.\n")
	}

	b.WriteString("Location: https://maps.google.com/?q=")
	b.WriteString(strconv.FormatFloat(lat, 'f', -1, 64))
	b.WriteString(",")
	b.WriteString(strconv.FormatFloat(lng, 'f', -1, 64))
	return b.String()
}
