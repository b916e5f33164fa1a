package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a student account row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	College      string    `json:"college,omitempty"`
	GradYear     int       `json:"grad_year,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AnalysisReport is a stored resume-vs-JD analysis. Breakdown and AI are
// opaque JSON documents owned by the caller.
type AnalysisReport struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Breakdown []byte    `json:"-"`
	AI        []byte    `json:"-"`
	Warning   string    `json:"warning,omitempty"`
	ModelUsed string    `json:"model_used,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CachedListing is one cached contest-listing payload keyed by source set.
type CachedListing struct {
	Key       string    `json:"key"`
	Payload   []byte    `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
}
