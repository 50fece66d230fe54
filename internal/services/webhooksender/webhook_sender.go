package webhooksender

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/webhook-validator/internal/services/classifier"
	"github.com/DIMO-Network/webhook-validator/internal/services/notification"
	"github.com/gofiber/fiber/v2"
)

const (
	// Default timeout for probe requests
	defaultProbeTimeout = 3 * time.Second
	// Maximum response body size read from a probed endpoint
	defaultMaxResponseBodySize = 64 * 1024
	defaultUserAgent           = "Webhook-Validator/1.0"

	// ProbeIDHeader carries the probe id so receivers can correlate logs.
	ProbeIDHeader = "X-Probe-Id"
)

// ErrInvalidTargetURL is returned when a request for the target cannot be built.
var ErrInvalidTargetURL = errors.New("invalid target URL")

// Config configures a WebhookSender. Zero values use defaults.
type Config struct {
	Timeout          time.Duration
	MaxBodyBytes     int64
	UserAgent        string
	AllowInsecureTLS bool
}

// WebhookSender issues a single probe request and records what came back.
type WebhookSender struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	userAgent    string
}

// NewWebhookSender creates a new WebhookSender. A nil client gets one built from cfg.
func NewWebhookSender(client *http.Client, cfg Config) *WebhookSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProbeTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxResponseBodySize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.AllowInsecureTLS {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // operator opt-in
		}
		client = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			// Redirects are reported to the operator as a non 2xx answer.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return &WebhookSender{
		client:       client,
		timeout:      cfg.Timeout,
		maxBodyBytes: cfg.MaxBodyBytes,
		userAgent:    cfg.UserAgent,
	}
}

// Timeout returns the probe ceiling.
func (w *WebhookSender) Timeout() time.Duration {
	return w.timeout
}

// SendProbe POSTs the payload to targetURL exactly once.
// Transport failures are not errors: they are reported through the returned exchange.
// An error is returned only when the request could not be attempted.
func (w *WebhookSender) SendProbe(ctx context.Context, targetURL string, payload *notification.Payload, probeID string) (*classifier.Exchange, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, richerrors.Error{
			ExternalMsg: "Failed to build notification payload",
			Err:         fmt.Errorf("failed to marshal probe payload: %w", err),
			Code:        fiber.StatusInternalServerError,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTargetURL, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", w.userAgent)
	if probeID != "" {
		req.Header.Set(ProbeIDHeader, probeID)
	}

	start := time.Now()
	resp, err := w.client.Do(req)
	if err != nil {
		kind, detail := transportErrorKind(err)
		return &classifier.Exchange{
			Elapsed:   time.Since(start),
			ErrKind:   kind,
			ErrDetail: detail,
		}, nil
	}
	defer resp.Body.Close() // nolint:errcheck

	// Read one byte past the limit to know whether the body was cut.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, w.maxBodyBytes+1))
	elapsed := time.Since(start)
	if err != nil {
		kind, detail := transportErrorKind(err)
		return &classifier.Exchange{
			Elapsed:   elapsed,
			ErrKind:   kind,
			ErrDetail: detail,
		}, nil
	}

	truncated := int64(len(respBody)) > w.maxBodyBytes
	if truncated {
		respBody = respBody[:w.maxBodyBytes]
	}

	return &classifier.Exchange{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
		Truncated:   truncated,
		Elapsed:     elapsed,
	}, nil
}
