package types

import "github.com/go-playground/validator/v10"

// RoadmapRequest is the body for POST /roadmap: a target role plus optional
// constraints used to generate a personalized learning plan.
type RoadmapRequest struct {
	TargetRole   string `json:"target_role" validate:"required,min=2"`
	WeeklyHours  int    `json:"weekly_hours,omitempty" validate:"omitempty,min=1,max=80"`
	DurationWeek int    `json:"duration_weeks,omitempty" validate:"omitempty,min=1,max=52"`
}

// RoadmapPhase is one stage of the generated plan.
type RoadmapPhase struct {
	Title     string   `json:"title"`
	Weeks     int      `json:"weeks"`
	Focus     string   `json:"focus"`
	Topics    []string `json:"topics"`
	Milestone string   `json:"milestone"`
}

// Roadmap is the structured payload expected from the generative model for a
// roadmap request.
type Roadmap struct {
	TargetRole string         `json:"target_role"`
	TotalWeeks int            `json:"total_weeks"`
	Phases     []RoadmapPhase `json:"phases"`
}

// RoadmapResponse wraps the generated roadmap with transport metadata.
type RoadmapResponse struct {
	Roadmap   *Roadmap `json:"roadmap,omitempty"`
	Warning   string   `json:"warning,omitempty"`
	ModelUsed string   `json:"model_used,omitempty"`
}

// Validate validates the RoadmapRequest using the validator.
func (r *RoadmapRequest) Validate() error {
	return validator.New().Struct(r)
}
