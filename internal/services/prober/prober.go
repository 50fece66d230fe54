// Package prober runs a single webhook probe: build the notification, send it once and
// classify what came back.
package prober

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/DIMO-Network/webhook-validator/internal/metrics"
	"github.com/DIMO-Network/webhook-validator/internal/services/classifier"
	"github.com/DIMO-Network/webhook-validator/internal/services/notification"
	"github.com/DIMO-Network/webhook-validator/internal/services/webhooksender"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sender delivers one notification to a target.
type Sender interface {
	SendProbe(ctx context.Context, targetURL string, payload *notification.Payload, probeID string) (*classifier.Exchange, error)
}

// Result is the classified outcome of a probe.
type Result struct {
	classifier.Result
	ID      string
	Payload *notification.Payload
}

// Prober composes the payload builder, sender and classifier. It holds no per-probe state.
type Prober struct {
	builder *notification.Builder
	sender  Sender
	policy  classifier.Policy
	newID   func() string
}

// New creates a Prober.
func New(sender Sender, policy classifier.Policy) *Prober {
	return &Prober{
		builder: notification.NewBuilder(),
		sender:  sender,
		policy:  policy.WithDefaults(),
		newID:   func() string { return uuid.New().String() },
	}
}

// Probe validates req and, when valid, sends exactly one notification to the target.
// Every outcome, including invalid input, is returned as a verdict.
func (p *Prober) Probe(ctx context.Context, req Request) *Result {
	id := p.newID()
	logger := zerolog.Ctx(ctx).With().Str("probeId", id).Logger()

	valid, err := validateRequest(req)
	if err != nil {
		logger.Debug().Err(err).Msg("Rejected probe request")
		return p.finish(&logger, "", &Result{ID: id, Result: classifier.InvalidInput(reason(err))}, "")
	}

	payload, err := p.builder.Build(valid.accountID, valid.topic)
	if err != nil {
		return p.finish(&logger, string(valid.topic), &Result{ID: id, Result: classifier.InvalidInput(reason(err))}, valid.targetURL)
	}

	ex, err := p.sender.SendProbe(ctx, valid.targetURL, payload, id)
	if err != nil {
		res := &Result{ID: id, Payload: payload}
		if errors.Is(err, webhooksender.ErrInvalidTargetURL) {
			res.Result = classifier.InvalidInput("webhook URL is not a valid URL")
		} else {
			logger.Error().Err(err).Msg("Probe could not be sent")
			res.Result = classifier.Result{
				Verdict: classifier.VerdictUnrecognized,
				Message: "Unexpected error while sending the probe: " + err.Error(),
			}
		}
		return p.finish(&logger, string(valid.topic), res, valid.targetURL)
	}

	res := &Result{
		ID:      id,
		Result:  classifier.Classify(p.policy, ex),
		Payload: payload,
	}
	return p.finish(&logger, string(valid.topic), res, valid.targetURL)
}

func (p *Prober) finish(logger *zerolog.Logger, topic string, res *Result, targetURL string) *Result {
	metrics.ObserveProbe(topic, string(res.Verdict), res.Elapsed)
	logger.Info().
		Str("topic", topic).
		Str("targetHost", hostOf(targetURL)).
		Str("verdict", string(res.Verdict)).
		Bool("failure", res.Verdict.IsFailure()).
		Str("errKind", res.ErrKind.String()).
		Int("status", res.StatusCode).
		Int("bodyLength", res.BodyLength).
		Bool("bodyTruncated", res.BodyTruncated).
		Dur("elapsed", res.Elapsed).
		Msg("Probe finished")
	return res
}

// reason strips the sentinel prefix from validation errors.
func reason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}

func hostOf(targetURL string) string {
	u, err := url.Parse(targetURL)
	if err != nil {
		return ""
	}
	return u.Host
}
