package deepl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestTranslator(t *testing.T, baseURL string, mutate func(*Config)) *Translator {
	t.Helper()

	cfg := validConfig()
	cfg.BaseURL = baseURL
	cfg.RetryTimeout = time.Millisecond
	if mutate != nil {
		mutate(&cfg)
	}

	tr, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tr
}

func translationsBody(texts ...string) map[string]interface{} {
	translations := make([]map[string]string, 0, len(texts))
	for _, text := range texts {
		translations = append(translations, map[string]string{
			"detected_source_language": "EN",
			"text":                     text,
		})
	}
	return map[string]interface{}{"translations": translations}
}

func TestTranslateText_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", got)
		}
		if r.URL.Path != "/v2/translate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.FormValue("auth_key"); got != "test-key" {
			t.Errorf("unexpected auth_key %q", got)
		}
		if got := r.FormValue("text"); got != "Hello" {
			t.Errorf("unexpected text %q", got)
		}

		json.NewEncoder(w).Encode(translationsBody("Hallo"))
	}))
	defer server.Close()

	tr := newTestTranslator(t, server.URL, nil)

	result, err := tr.TranslateText(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "Hallo" {
		t.Errorf("expected 'Hallo', got %q", result)
	}
}

func TestTranslateText_Echo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(translationsBody(r.FormValue("text")))
	}))
	defer server.Close()

	tr := newTestTranslator(t, server.URL, nil)

	result, err := tr.TranslateText(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "Hello" {
		t.Errorf("expected 'Hello', got %q", result)
	}
}

func TestTranslateText_FirstTranslationWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(translationsBody("Hallo", "Welt"))
	}))
	defer server.Close()

	tr := newTestTranslator(t, server.URL, nil)

	result, err := tr.TranslateText(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "Hallo" {
		t.Errorf("expected first translation 'Hallo', got %q", result)
	}
}

func TestTranslateText_FatalStatuses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"auth failed", http.StatusForbidden, ErrAuthFailed},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"request too large", http.StatusRequestEntityTooLarge, ErrRequestTooLarge},
		{"quota exceeded", statusQuotaExceeded, ErrQuotaExceeded},
		{"unmapped 4xx", http.StatusTeapot, ErrUnexpected},
		{"unmapped 5xx", http.StatusInternalServerError, ErrUnexpected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			tr := newTestTranslator(t, server.URL, func(c *Config) {
				c.RetryTimeout = time.Hour // must never be waited
			})

			start := time.Now()
			_, err := tr.TranslateText(context.Background(), "Hello")
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("expected exactly one call, got %d", got)
			}
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Errorf("fatal status must fail without delay, took %v", elapsed)
			}
		})
	}
}

func TestTranslateText_RetryExhaustion(t *testing.T) {
	for name, status := range map[string]int{
		"rate limited":        http.StatusTooManyRequests,
		"service unavailable": http.StatusServiceUnavailable,
	} {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(status)
			}))
			defer server.Close()

			tr := newTestTranslator(t, server.URL, func(c *Config) {
				c.RetryLimit = 3
			})

			_, err := tr.TranslateText(context.Background(), "Hello")
			if !errors.Is(err, ErrRetryLimitExceeded) {
				t.Errorf("expected ErrRetryLimitExceeded, got %v", err)
			}
			if got := calls.Load(); got != 4 {
				t.Errorf("expected retry limit + 1 = 4 calls, got %d", got)
			}
		})
	}
}

func TestTranslateText_ZeroRetryLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	tr := newTestTranslator(t, server.URL, func(c *Config) {
		c.RetryLimit = 0
	})

	_, err := tr.TranslateText(context.Background(), "Hello")
	if !errors.Is(err, ErrRetryLimitExceeded) {
		t.Errorf("expected ErrRetryLimitExceeded, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected a single call, got %d", got)
	}
}

func TestTranslateText_RetryThenSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(translationsBody("Hallo"))
	}))
	defer server.Close()

	tr := newTestTranslator(t, server.URL, func(c *Config) {
		c.RetryLimit = 5
	})

	result, err := tr.TranslateText(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "Hallo" {
		t.Errorf("expected 'Hallo', got %q", result)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 calls, got %d", got)
	}
}

func TestTranslateText_MalformedResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty translations", `{"translations":[]}`},
		{"missing translations", `{}`},
		{"invalid json", `{"translations":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			tr := newTestTranslator(t, server.URL, nil)

			_, err := tr.TranslateText(context.Background(), "Hello")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("parsing errors must not be retried, got %d calls", got)
			}
		})
	}
}

func TestTranslateText_ContextCanceledDuringWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	tr := newTestTranslator(t, server.URL, func(c *Config) {
		c.RetryTimeout = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.TranslateText(ctx, "Hello")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestTranslateText_LogsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	core, logs := observer.New(zap.InfoLevel)

	cfg := validConfig()
	cfg.BaseURL = server.URL
	cfg.RetryLimit = 1
	cfg.RetryTimeout = time.Millisecond

	tr, err := New(cfg, zap.New(core))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.TranslateText(context.Background(), "Hello")
	if !errors.Is(err, ErrRetryLimitExceeded) {
		t.Fatalf("expected ErrRetryLimitExceeded, got %v", err)
	}

	if got := logs.FilterMessage("too many requests, will retry").Len(); got != 1 {
		t.Errorf("expected one warning, got %d", got)
	}
	if got := logs.FilterMessage("waiting before retry").Len(); got != 1 {
		t.Errorf("expected one info notice, got %d", got)
	}
}
