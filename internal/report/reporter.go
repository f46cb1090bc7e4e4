// Package report delivers final session intelligence to the configured
// callback endpoint. Delivery is terminal: the reporter retries transient
// failures with exponential backoff and always returns an outcome, never an
// error, so one bad endpoint cannot stall the conversation loop.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/domain"
)

const errorBodyLimit = 512

// Config controls the callback endpoint and retry behavior.
type Config struct {
	URL         string
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
}

// Reporter posts final reports over HTTP.
type Reporter struct {
	cfg    Config
	client *http.Client
}

func NewReporter(cfg Config) *Reporter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	return &Reporter{cfg: cfg, client: &http.Client{}}
}

// Enabled reports whether a callback URL is configured.
func (r *Reporter) Enabled() bool {
	return r.cfg.URL != ""
}

// Deliver posts the report, retrying network errors, 5xx and 429 with
// exponential backoff (base, 2x base, 4x base, ...). Other 4xx responses are
// treated as terminal rejections. The outcome records how the series ended
// and how many attempts it took.
func (r *Reporter) Deliver(ctx context.Context, rep *domain.Report) domain.DeliveryOutcome {
	payload := *rep
	if payload.AgentNotes == "" {
		payload.AgentNotes = "Scam engagement completed"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("session_id", rep.SessionID).Msg("Report payload could not be encoded")
		return domain.DeliveryOutcome{Status: domain.DeliveryExhausted}
	}

	attempts := 0
	for attempt := 0; attempt < r.cfg.MaxRetries; attempt++ {
		attempts++

		status, snippet, err := r.post(ctx, body)
		if err == nil && status >= 200 && status < 300 {
			log.Info().
				Str("session_id", rep.SessionID).
				Int("attempts", attempts).
				Msg("Final report delivered")
			return domain.DeliveryOutcome{Status: domain.DeliveryDelivered, Attempts: attempts}
		}

		if err == nil && !retryableStatus(status) {
			log.Error().
				Str("session_id", rep.SessionID).
				Int("status", status).
				Str("body", snippet).
				Msg("Callback rejected final report")
			return domain.DeliveryOutcome{Status: domain.DeliveryExhausted, Attempts: attempts}
		}

		evt := log.Warn().
			Str("session_id", rep.SessionID).
			Int("attempt", attempts).
			Int("max_attempts", r.cfg.MaxRetries)
		if err != nil {
			evt = evt.Err(err)
		} else {
			evt = evt.Int("status", status).Str("body", snippet)
		}
		evt.Msg("Report delivery attempt failed")

		if attempt < r.cfg.MaxRetries-1 {
			if !r.backoff(ctx, attempt) {
				log.Warn().Str("session_id", rep.SessionID).Msg("Report delivery abandoned, context done")
				break
			}
		}
	}

	log.Error().
		Str("session_id", rep.SessionID).
		Int("attempts", attempts).
		Msg("Report delivery exhausted all attempts")
	return domain.DeliveryOutcome{Status: domain.DeliveryExhausted, Attempts: attempts}
}

func retryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// post runs one bounded delivery attempt. On a non-2xx response the returned
// snippet carries the start of the response body for logging.
func (r *Reporter) post(ctx context.Context, body []byte) (int, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, r.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	snippet := ""
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		snippet = string(raw)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, snippet, nil
}

// backoff sleeps base << attempt, returning false when the context ends first.
func (r *Reporter) backoff(ctx context.Context, attempt int) bool {
	timer := time.NewTimer(r.cfg.BackoffBase << attempt)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
