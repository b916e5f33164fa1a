package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hari10031/CodeSync-sub001/internal/llm"
	"github.com/hari10031/CodeSync-sub001/internal/prompts"
	"github.com/hari10031/CodeSync-sub001/internal/schemas"
	"github.com/hari10031/CodeSync-sub001/internal/server/middleware"
	"github.com/hari10031/CodeSync-sub001/internal/types"
)

const (
	defaultRoadmapWeeklyHours   = 8
	defaultRoadmapDurationWeeks = 12
)

// handleRoadmap generates a personalized learning roadmap. Unlike analysis
// there is no deterministic fallback, so a generation failure is an error
// response rather than a warning.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.RoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.WeeklyHours == 0 {
		req.WeeklyHours = defaultRoadmapWeeklyHours
	}
	if req.DurationWeek == 0 {
		req.DurationWeek = defaultRoadmapDurationWeeks
	}

	// The profile's skill list personalizes the plan; a missing profile just
	// means an unpersonalized one.
	var skills []string
	if user, err := s.userService.Get(r.Context(), userID); err == nil {
		skills = user.Skills
	}

	prompt, err := prompts.BuildRoadmapPrompt(req.TargetRole, req.WeeklyHours, req.DurationWeek, skills)
	if err != nil {
		log.Printf("roadmap prompt build failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to build roadmap prompt")
		return
	}

	raw, model, err := s.gateway.GenerateWithModel(r.Context(), prompt, nil)
	if err != nil {
		log.Printf("roadmap generation failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Roadmap generation failed: "+generationWarning(err))
		return
	}

	candidate, ok := llm.ExtractCandidate(raw)
	if !ok {
		s.errorResponse(w, http.StatusBadGateway, "Model response contained no JSON")
		return
	}
	if err := schemas.ValidateRoadmap([]byte(candidate)); err != nil {
		log.Printf("roadmap rejected by schema: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Model response failed validation")
		return
	}

	var roadmap types.Roadmap
	if err := json.Unmarshal([]byte(candidate), &roadmap); err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Model response was not parseable")
		return
	}

	resp := types.RoadmapResponse{Roadmap: &roadmap, ModelUsed: model}
	if total := phaseWeekSum(roadmap.Phases); total != roadmap.TotalWeeks {
		resp.Warning = "phase weeks do not sum to the stated total"
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func phaseWeekSum(phases []types.RoadmapPhase) int {
	total := 0
	for _, p := range phases {
		total += p.Weeks
	}
	return total
}
