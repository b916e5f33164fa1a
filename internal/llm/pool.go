package llm

import (
	"sync"
	"time"
)

// quotaCooldown is the fixed exclusion window applied after a quota failure.
// A later quota failure while already cooling extends the window from the new
// failure time; it is never shortened.
const quotaCooldown = 15 * time.Minute

// Credential is one provider API key plus its health state. Created once at
// startup, never destroyed, mutated only through Pool.ReportOutcome.
type Credential struct {
	key string

	blocked       bool
	cooldownUntil time.Time
	lastError     string
	lastStatus    int
}

// Key returns the secret value for issuing a call. It is never serialized.
func (c *Credential) Key() string { return c.key }

// CredentialStatus is the externally visible health of one pool entry. The
// credential value itself is deliberately absent.
type CredentialStatus struct {
	Blocked       bool       `json:"blocked"`
	CooldownUntil *time.Time `json:"cooldown_until"`
	LastError     string     `json:"last_error,omitempty"`
	LastStatus    int        `json:"last_status,omitempty"`
}

// Pool owns an ordered set of credentials and hands them out round-robin,
// skipping blocked and cooling entries. A single Pool is shared by all
// in-flight requests.
type Pool struct {
	mu     sync.Mutex
	creds  []*Credential
	cursor int

	now func() time.Time
}

// NewPool builds a pool from the configured keys, preserving their order.
func NewPool(keys []string) *Pool {
	creds := make([]*Credential, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		creds = append(creds, &Credential{key: k})
	}
	return &Pool{
		creds:  creds,
		cursor: -1,
		now:    time.Now,
	}
}

// Size returns the number of configured credentials.
func (p *Pool) Size() int {
	return len(p.creds)
}

// Select returns the next eligible credential in rotation order, or nil when
// every entry is blocked or cooling. The cursor always advances past the
// returned entry, so fairness holds across the process lifetime rather than
// per request.
func (p *Pool) Select() *Credential {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.creds)
	if n == 0 {
		return nil
	}

	now := p.now()
	for i := 1; i <= n; i++ {
		idx := (p.cursor + i) % n
		c := p.creds[idx]
		if c.blocked || now.Before(c.cooldownUntil) {
			continue
		}
		p.cursor = idx
		return c
	}
	return nil
}

// ReportOutcome records the result of one attempt through a credential.
// The last error message and status are always recorded; pool state changes
// depend on the kind: fatal blocks the credential forever, quota starts (or
// extends) the cooldown, everything else is log-only.
func (p *Pool) ReportOutcome(c *Credential, kind ErrorKind, statusCode int, message string) {
	if c == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c.lastError = message
	c.lastStatus = statusCode

	switch kind {
	case KindFatalCredential:
		c.blocked = true
	case KindQuota:
		c.cooldownUntil = p.now().Add(quotaCooldown)
	}
}

// StarvationError explains why no credential is currently eligible, typed so
// callers can surface the dominant cause without any network attempt.
func (p *Pool) StarvationError() *CallError {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.creds) == 0 {
		return &CallError{Kind: KindUnconfigured, Message: "no generation credentials configured"}
	}

	now := p.now()
	cooling := 0
	for _, c := range p.creds {
		if !c.blocked && now.Before(c.cooldownUntil) {
			cooling++
		}
	}
	if cooling > 0 {
		return &CallError{
			Kind:       KindQuota,
			StatusCode: 429,
			Message:    "all credentials are blocked or cooling down after quota failures",
		}
	}
	return &CallError{
		Kind:    KindFatalCredential,
		Message: "all credentials are permanently blocked",
	}
}

// Snapshot returns the health of every entry for introspection. Secrets are
// never included.
func (p *Pool) Snapshot() []CredentialStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]CredentialStatus, 0, len(p.creds))
	for _, c := range p.creds {
		st := CredentialStatus{
			Blocked:    c.blocked,
			LastError:  c.lastError,
			LastStatus: c.lastStatus,
		}
		if !c.cooldownUntil.IsZero() {
			until := c.cooldownUntil
			st.CooldownUntil = &until
		}
		statuses = append(statuses, st)
	}
	return statuses
}
