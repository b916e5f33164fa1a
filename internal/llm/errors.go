// Package llm provides the resilient generation-call layer: a rotating pool of
// provider credentials, a failover gateway across credentials and models, and
// strict structured-output extraction from raw model text.
package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a provider call failure into the fixed vocabulary the
// pool and gateway act on.
type ErrorKind string

const (
	// KindNone marks a successful call when reporting an outcome.
	KindNone ErrorKind = "none"
	// KindFatalCredential means the credential itself is invalid or revoked.
	// The pool blocks it permanently.
	KindFatalCredential ErrorKind = "fatal_credential"
	// KindQuota means the credential hit a quota or rate limit. The pool
	// places it on a fixed cooldown.
	KindQuota ErrorKind = "quota_exceeded"
	// KindOverloaded means provider-side congestion worth a short local retry.
	KindOverloaded ErrorKind = "overloaded"
	// KindTransient covers recognizable network or server failures.
	KindTransient ErrorKind = "transient"
	// KindUnknown is the conservative fallback; retried like transient but
	// logged distinctly.
	KindUnknown ErrorKind = "unknown"
	// KindUnconfigured means no credentials are configured at all. Returned
	// before any network attempt.
	KindUnconfigured ErrorKind = "unconfigured"
)

var (
	fatalCredentialPhrases = []string{
		"invalid api key",
		"api key not valid",
		"api_key_invalid",
		"not valid",
		"leaked",
		"revoked",
		"unauthenticated",
		"permission denied",
	}
	quotaPhrases = []string{
		"quota",
		"rate limit",
		"rate-limit",
		"resource_exhausted",
		"resource has been exhausted",
		"too many requests",
	}
	overloadedPhrases = []string{
		"overloaded",
		"unavailable",
		"timeout",
		"deadline exceeded",
	}
	transientPhrases = []string{
		"connection reset",
		"connection refused",
		"broken pipe",
		"eof",
		"network",
		"internal error",
		"temporarily",
	}
)

// Classify maps an opaque call failure to an ErrorKind. Pure and total:
// message matching is case-insensitive and the first matching rule wins, so
// the order of the checks is significant.
func Classify(statusCode int, message string) ErrorKind {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, fatalCredentialPhrases),
		statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden:
		return KindFatalCredential

	case statusCode == http.StatusTooManyRequests,
		containsAny(msg, quotaPhrases):
		return KindQuota

	case statusCode == http.StatusServiceUnavailable,
		containsAny(msg, overloadedPhrases):
		return KindOverloaded

	case statusCode >= 500,
		containsAny(msg, transientPhrases):
		return KindTransient

	default:
		return KindUnknown
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// CallError is the typed failure of one gateway invocation. Provider failures
// always resolve to a CallError rather than a panic or an untyped error.
type CallError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation failed (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generation failed (%s): %s", e.Kind, e.Message)
}

// statusFromError pulls an HTTP status code out of a provider error when one
// is available. Gemini surfaces these as *googleapi.Error.
func statusFromError(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
