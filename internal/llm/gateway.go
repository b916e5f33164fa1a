package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hari10031/CodeSync-sub001/internal/observability"
)

const (
	// overloadRetries bounds local retries against the same model when the
	// provider reports congestion.
	overloadRetries = 3
	// defaultBaseDelay seeds the quadratic backoff (base, 4x base, 9x base).
	defaultBaseDelay = 500 * time.Millisecond
)

// Caller issues one raw generation call with a specific credential and model.
// The production implementation talks to Gemini; tests substitute a script.
type Caller interface {
	Call(ctx context.Context, apiKey, model, prompt string) (string, error)
}

// Gateway orchestrates one logical generation request across the credential
// pool and an ordered model priority list.
type Gateway struct {
	pool      *Pool
	caller    Caller
	models    []string
	baseDelay time.Duration
}

// DefaultModelPriority lists models fastest and cheapest first; the gateway
// walks the list in order and the first non-empty answer wins.
func DefaultModelPriority() []string {
	return []string{"gemini-2.5-flash-lite", "gemini-2.5-flash", "gemini-2.5-pro"}
}

// NewGateway wires a gateway to a shared pool and a caller.
func NewGateway(pool *Pool, caller Caller, models []string) *Gateway {
	if len(models) == 0 {
		models = DefaultModelPriority()
	}
	return &Gateway{
		pool:      pool,
		caller:    caller,
		models:    models,
		baseDelay: defaultBaseDelay,
	}
}

// Generate runs the full failover policy and returns the first non-empty
// generation, or the last observed failure as a *CallError.
func (g *Gateway) Generate(ctx context.Context, prompt string, models []string) (string, error) {
	text, _, err := g.GenerateWithModel(ctx, prompt, models)
	return text, err
}

// GenerateWithModel is Generate plus the name of the model that produced the
// winning answer.
//
// The outer loop runs at most once per pool entry; quota and credential
// failures abandon the current credential, overload failures earn bounded
// same-model retries with backoff, and everything else skips to the next
// model. If Select returns nil the pool is exhausted and the last failure is
// returned without further network attempts.
func (g *Gateway) GenerateWithModel(ctx context.Context, prompt string, models []string) (string, string, error) {
	if g.pool.Size() == 0 {
		observability.GenerationOutcomes.WithLabelValues(string(KindUnconfigured)).Inc()
		return "", "", &CallError{Kind: KindUnconfigured, Message: "no generation credentials configured"}
	}
	if len(models) == 0 {
		models = g.models
	}

	lastErr := &CallError{Kind: KindUnknown, Message: "no eligible credential in pool"}

	// Each credential gets at most one pass this request; rotation can hand
	// back a survivor once its peers are blocked or cooling.
	attempted := make(map[*Credential]struct{}, g.pool.Size())

	for range g.pool.Size() {
		cred := g.pool.Select()
		if cred == nil {
			if len(attempted) == 0 {
				lastErr = g.pool.StarvationError()
			}
			break
		}
		if _, tried := attempted[cred]; tried {
			break
		}
		attempted[cred] = struct{}{}

		for _, model := range models {
			text, cerr := g.attemptModel(ctx, cred, model, prompt)
			if cerr == nil {
				if text != "" {
					g.pool.ReportOutcome(cred, KindNone, 0, "")
					observability.GenerationOutcomes.WithLabelValues("success").Inc()
					return text, model, nil
				}
				// A well-formed but empty answer is a soft failure; try the
				// next model on the same credential.
				lastErr = &CallError{Kind: KindUnknown, Message: fmt.Sprintf("empty response from model %s", model)}
				log.Printf("[llm] empty response from model %s", model)
				continue
			}

			lastErr = cerr
			g.pool.ReportOutcome(cred, cerr.Kind, cerr.StatusCode, cerr.Message)
			log.Printf("[llm] model %s failed: %s", model, cerr.Kind)

			if cerr.Kind == KindFatalCredential || cerr.Kind == KindQuota {
				break
			}
		}
	}

	observability.GenerationOutcomes.WithLabelValues(string(lastErr.Kind)).Inc()
	return "", "", lastErr
}

// attemptModel issues one call, retrying locally on overload with a
// quadratically increasing delay before giving up on the model.
func (g *Gateway) attemptModel(ctx context.Context, cred *Credential, model, prompt string) (string, *CallError) {
	for attempt := 0; ; attempt++ {
		observability.GenerationAttempts.WithLabelValues(model).Inc()
		text, err := g.caller.Call(ctx, cred.Key(), model, prompt)
		if err == nil {
			return strings.TrimSpace(text), nil
		}

		status := statusFromError(err)
		kind := Classify(status, err.Error())
		cerr := &CallError{Kind: kind, StatusCode: status, Message: err.Error()}

		if kind != KindOverloaded || attempt >= overloadRetries {
			return "", cerr
		}

		delay := g.baseDelay * time.Duration((attempt+1)*(attempt+1))
		log.Printf("[llm] model %s overloaded, retry %d/%d in %v", model, attempt+1, overloadRetries, delay)
		if err := sleepCtx(ctx, delay); err != nil {
			return "", &CallError{Kind: KindTransient, Message: err.Error()}
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
