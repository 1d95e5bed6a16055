// Package deepl wraps the DeepL v2 text-translation HTTP API: typed request
// configuration, status-code error mapping, bounded retry on transient
// failures, and order-preserving batch translation.
package deepl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Translator is a client for the translation API. It is safe for concurrent
// use: the configuration is read-only after New and every call carries its
// own request state.
type Translator struct {
	cfg      Config
	endpoint string
	client   *http.Client
	logger   *zap.Logger
	workers  int
}

// New validates cfg and returns a ready client. A nil logger disables
// logging; log output never affects translation outcomes.
func New(cfg Config, logger *zap.Logger) (*Translator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Translator{
		cfg:      cfg,
		endpoint: strings.TrimRight(baseURL, "/") + "/v2/translate",
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		workers:  workers,
	}, nil
}

// TranslateText translates a single text. Retryable statuses (429, 503) are
// retried up to RetryLimit additional times with RetryTimeout between
// attempts; every other failure surfaces immediately as one of the package
// error kinds.
func (t *Translator) TranslateText(ctx context.Context, text string) (string, error) {
	form := t.cfg.buildRequest(text).Encode()

	for attempt := 0; ; attempt++ {
		status, translated, err := t.post(ctx, form)
		if err != nil {
			return "", err
		}
		if status == http.StatusOK {
			return translated, nil
		}

		retryable, classErr := classify(status)
		if !retryable {
			return "", classErr
		}
		if attempt >= t.cfg.RetryLimit {
			return "", fmt.Errorf("%w after %d attempts: %v", ErrRetryLimitExceeded, attempt+1, classErr)
		}

		switch status {
		case http.StatusTooManyRequests:
			t.logger.Warn("too many requests, will retry",
				zap.Int("attempt", attempt+1),
				zap.Int("retry_limit", t.cfg.RetryLimit))
		case http.StatusServiceUnavailable:
			t.logger.Warn("service unavailable, will retry",
				zap.Int("attempt", attempt+1),
				zap.Int("retry_limit", t.cfg.RetryLimit))
		}
		t.logger.Info("waiting before retry", zap.Duration("retry_timeout", t.cfg.RetryTimeout))

		if err := t.wait(ctx); err != nil {
			return "", err
		}
	}
}

// post performs one API call. A non-200 status is not an error here; the
// caller classifies it.
func (t *Translator) post(ctx context.Context, form string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, "", nil
	}

	var result struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return resp.StatusCode, "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Translations) == 0 {
		return resp.StatusCode, "", fmt.Errorf("%w: no translations returned", ErrMalformedResponse)
	}

	return resp.StatusCode, result.Translations[0].Text, nil
}

// wait blocks the calling goroutine for the configured retry timeout,
// honoring context cancellation.
func (t *Translator) wait(ctx context.Context) error {
	if t.cfg.RetryTimeout == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(t.cfg.RetryTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
