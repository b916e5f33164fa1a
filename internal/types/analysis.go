package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hari10031/CodeSync-sub001/internal/scoring"
)

// AnalyzeRequest is the body for POST /analyze: a resume matched against a
// job description.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=50"`
	JobDescription string `json:"job_description" validate:"required,min=20"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validator.New().Struct(r)
}

// AIEnhancement is the structured payload expected from the generative model.
// Field presence is enforced by schema validation, not by optimistic defaults.
type AIEnhancement struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Suggestions     []string `json:"suggestions"`
	TailoredPitch   string   `json:"tailored_pitch,omitempty"`
	EstimatedFitPct int      `json:"estimated_fit_pct,omitempty"`
}

// AnalysisReport is the merged result returned to the caller: the
// deterministic breakdown is always present; the AI section is nil whenever
// the generative path failed, with Warning explaining why.
type AnalysisReport struct {
	ID        uuid.UUID          `json:"id,omitempty"`
	UserID    uuid.UUID          `json:"user_id,omitempty"`
	Breakdown *scoring.Breakdown `json:"breakdown"`
	AI        *AIEnhancement     `json:"ai,omitempty"`
	Warning   string             `json:"warning,omitempty"`
	ModelUsed string             `json:"model_used,omitempty"`
	CreatedAt time.Time          `json:"created_at,omitempty"`
}
