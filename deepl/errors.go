package deepl

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidConfig is returned by New when the configuration fails
	// validation.
	ErrInvalidConfig = errors.New("deepl: invalid configuration")

	ErrBadRequest         = errors.New("deepl: bad request, check your parameters")
	ErrAuthFailed         = errors.New("deepl: authorization failed, check your auth key")
	ErrNotFound           = errors.New("deepl: requested resource not found")
	ErrRequestTooLarge    = errors.New("deepl: request size exceeds the limit")
	ErrRateLimited        = errors.New("deepl: too many requests")
	ErrServiceUnavailable = errors.New("deepl: service temporarily unavailable")
	ErrQuotaExceeded      = errors.New("deepl: character quota exceeded")
	ErrRetryLimitExceeded = errors.New("deepl: retry limit reached")
	ErrMalformedResponse  = errors.New("deepl: malformed response body")
	ErrUnexpected         = errors.New("deepl: unexpected server error")
)

// classify maps a non-200 HTTP status code to its error kind. The bool
// reports whether the status may be retried.
func classify(status int) (bool, error) {
	switch status {
	case http.StatusBadRequest:
		return false, ErrBadRequest
	case http.StatusForbidden:
		return false, ErrAuthFailed
	case http.StatusNotFound:
		return false, ErrNotFound
	case http.StatusRequestEntityTooLarge:
		return false, ErrRequestTooLarge
	case http.StatusTooManyRequests:
		return true, ErrRateLimited
	case http.StatusServiceUnavailable:
		return true, ErrServiceUnavailable
	case statusQuotaExceeded:
		return false, ErrQuotaExceeded
	default:
		return false, fmt.Errorf("%w (status %d)", ErrUnexpected, status)
	}
}

// statusQuotaExceeded is the non-standard status code the service uses to
// signal an exhausted character quota. It is distinct from rate limiting
// and never retried.
const statusQuotaExceeded = 456
