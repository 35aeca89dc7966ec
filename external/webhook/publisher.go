// Package webhook delivers finished match results to a configured HTTP
// endpoint. Delivery failures are reported to the caller, who treats them
// as best effort.
package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
	"github.com/futsalverse/futsal-manager/internal/platform/resilience"
)

type Config struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Publisher struct {
	client         *http.Client
	url            string
	token          string
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	logger         *logging.Logger
}

func NewPublisher(cfg Config, logger *logging.Logger) (*Publisher, error) {
	endpoint, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid webhook url")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	return &Publisher{
		client:         &http.Client{Timeout: timeout},
		url:            endpoint,
		token:          strings.TrimSpace(cfg.Token),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		logger:         logger,
	}, nil
}

type matchResultPayload struct {
	Event   string       `json:"event"`
	Match   match.Result `json:"match"`
	Goals   []match.Goal `json:"goals"`
	EmitsAt time.Time    `json:"emitsAt"`
}

func (p *Publisher) PublishMatchResult(ctx context.Context, result match.Result, goals []match.Goal) error {
	payload := matchResultPayload{
		Event:   "match.finished",
		Match:   result,
		Goals:   goals,
		EmitsAt: time.Now().UTC(),
	}

	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected delivery",
				"match_id", result.ID, "state", string(p.breaker.State()))
			return errors.Wrapf(err, "publish match result match_id=%s", result.ID)
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return errors.Wrap(err, "encode match result payload")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", p.url),
			attribute.String("webhook.event", payload.Event),
			attribute.String("webhook.match_id", result.ID),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return errors.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.recordOutcome(false)
		return errors.Wrapf(err, "post match result match_id=%s", result.ID)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		p.recordOutcome(false)
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Newf(
			"post match result match_id=%s status=%d body=%s",
			result.ID,
			resp.StatusCode,
			strings.TrimSpace(string(raw)),
		)
	}

	p.recordOutcome(true)
	p.logger.InfoContext(ctx, "match result published", "match_id", result.ID, "status", resp.StatusCode)
	return nil
}

func (p *Publisher) recordOutcome(success bool) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if success {
		p.breaker.RecordSuccess()
		return
	}
	p.breaker.RecordFailure()
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", errors.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", errors.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", errors.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}
