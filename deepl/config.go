package deepl

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL      = "https://api.deepl.com"
	DefaultTimeout      = 30 * time.Second
	DefaultRetryLimit   = 7
	DefaultRetryTimeout = 2 * time.Second
)

// Config holds the immutable per-client translation parameters. It is a
// value type: New validates it once and every call reuses it unchanged.
type Config struct {
	// AuthKey is the API authentication key. Required.
	AuthKey string

	// SourceLang and TargetLang must be members of the supported set.
	SourceLang Language
	TargetLang Language

	SplitSentences     SentenceSplitting
	PreserveFormatting Formatting

	// TagHandling activates structured-markup mode. The tag lists and
	// OutlineDetection are only sent when it is set.
	TagHandling      TagHandling
	OutlineDetection Outline
	NonSplittingTags []string
	SplittingTags    []string
	IgnoreTags       []string

	// RetryLimit is the maximum number of additional attempts after the
	// first rejected request. RetryTimeout is the delay between attempts.
	RetryLimit   int
	RetryTimeout time.Duration

	// BaseURL overrides the production API endpoint. Empty means
	// DefaultBaseURL.
	BaseURL string

	// Timeout bounds a single HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Workers is the pool size for parallel batch translation. Zero means
	// one worker per CPU.
	Workers int
}

// NewConfig returns a Config with the default retry policy. The remaining
// fields keep their zero values, which match the service defaults.
func NewConfig(authKey string, source, target Language) Config {
	return Config{
		AuthKey:      authKey,
		SourceLang:   source,
		TargetLang:   target,
		RetryLimit:   DefaultRetryLimit,
		RetryTimeout: DefaultRetryTimeout,
	}
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if c.AuthKey == "" {
		return fmt.Errorf("%w: auth key must not be empty", ErrInvalidConfig)
	}
	if !c.SourceLang.valid() {
		return fmt.Errorf("%w: unsupported source language %q", ErrInvalidConfig, string(c.SourceLang))
	}
	if !c.TargetLang.valid() {
		return fmt.Errorf("%w: unsupported target language %q", ErrInvalidConfig, string(c.TargetLang))
	}
	if !c.SplitSentences.valid() {
		return fmt.Errorf("%w: invalid sentence splitting mode %d", ErrInvalidConfig, int(c.SplitSentences))
	}
	if !c.PreserveFormatting.valid() {
		return fmt.Errorf("%w: invalid formatting mode %d", ErrInvalidConfig, int(c.PreserveFormatting))
	}
	if !c.TagHandling.valid() {
		return fmt.Errorf("%w: invalid tag handling mode %d", ErrInvalidConfig, int(c.TagHandling))
	}
	if !c.OutlineDetection.valid() {
		return fmt.Errorf("%w: invalid outline detection mode %d", ErrInvalidConfig, int(c.OutlineDetection))
	}
	if c.RetryLimit < 0 {
		return fmt.Errorf("%w: retry limit must not be negative", ErrInvalidConfig)
	}
	if c.RetryTimeout < 0 {
		return fmt.Errorf("%w: retry timeout must not be negative", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	return nil
}

// buildRequest serializes the configuration plus one text into the form
// payload of a single API call. Pure function, no I/O.
func (c Config) buildRequest(text string) url.Values {
	params := url.Values{}
	params.Set("auth_key", c.AuthKey)
	params.Set("text", text)
	params.Set("source_lang", string(c.SourceLang))
	params.Set("target_lang", string(c.TargetLang))
	params.Set("split_sentences", c.SplitSentences.wireValue())
	params.Set("preserve_formatting", c.PreserveFormatting.wireValue())

	if c.TagHandling != TagHandlingNone {
		params.Set("tag_handling", c.TagHandling.wireValue())
		params.Set("outline_detection", c.OutlineDetection.wireValue())

		// Empty tag lists are omitted entirely, not sent as empty strings.
		if len(c.NonSplittingTags) > 0 {
			params.Set("non_splitting_tags", strings.Join(c.NonSplittingTags, ","))
		}
		if len(c.SplittingTags) > 0 {
			params.Set("splitting_tags", strings.Join(c.SplittingTags, ","))
		}
		if len(c.IgnoreTags) > 0 {
			params.Set("ignore_tags", strings.Join(c.IgnoreTags, ","))
		}
	}

	return params
}
