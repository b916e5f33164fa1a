package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/hari10031/CodeSync-sub001/internal/db"
	"github.com/hari10031/CodeSync-sub001/internal/llm"
	"github.com/hari10031/CodeSync-sub001/internal/prompts"
	"github.com/hari10031/CodeSync-sub001/internal/schemas"
	"github.com/hari10031/CodeSync-sub001/internal/scoring"
	"github.com/hari10031/CodeSync-sub001/internal/server/middleware"
	"github.com/hari10031/CodeSync-sub001/internal/types"
)

// analysisStore is the subset of database operations the analysis handlers
// need. *db.DB satisfies it.
type analysisStore interface {
	SaveAnalysis(ctx context.Context, userID uuid.UUID, breakdown, ai []byte, warning, modelUsed string) (uuid.UUID, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*db.AnalysisReport, error)
	ListAnalysesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db.AnalysisReport, error)
}

// handleAnalyze scores a resume against a job description. The lexical
// breakdown is always computed; the AI enhancement rides on top of it and
// degrades to a warning when the generative path fails.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	breakdown := scoring.Score(req.ResumeText, req.JobDescription)

	report := &types.AnalysisReport{
		UserID:    userID,
		Breakdown: breakdown,
	}
	report.AI, report.ModelUsed, report.Warning = s.enhanceAnalysis(r.Context(), &req, breakdown)

	s.persistAnalysis(r.Context(), report)
	s.jsonResponse(w, http.StatusOK, report)
}

// enhanceAnalysis runs the generative half of an analysis. It never fails the
// request: any problem comes back as a warning with a nil enhancement.
func (s *Server) enhanceAnalysis(ctx context.Context, req *types.AnalyzeRequest, breakdown *scoring.Breakdown) (*types.AIEnhancement, string, string) {
	prompt, err := prompts.BuildAnalysisPrompt(req.ResumeText, req.JobDescription, breakdown)
	if err != nil {
		log.Printf("analysis prompt build failed: %v", err)
		return nil, "", "AI enhancement unavailable: prompt template error"
	}

	raw, model, err := s.gateway.GenerateWithModel(ctx, prompt, nil)
	if err != nil {
		log.Printf("analysis generation failed: %v", err)
		return nil, "", "AI enhancement unavailable: " + generationWarning(err)
	}

	candidate, ok := llm.ExtractCandidate(raw)
	if !ok {
		return nil, model, "AI enhancement unavailable: model response contained no JSON"
	}
	if err := schemas.ValidateEnhancement([]byte(candidate)); err != nil {
		log.Printf("analysis enhancement rejected by schema: %v", err)
		return nil, model, "AI enhancement unavailable: model response failed validation"
	}

	var ai types.AIEnhancement
	if err := json.Unmarshal([]byte(candidate), &ai); err != nil {
		return nil, model, "AI enhancement unavailable: model response was not parseable"
	}
	return &ai, model, ""
}

// generationWarning maps a gateway failure to user-facing text.
func generationWarning(err error) string {
	var callErr *llm.CallError
	if !errors.As(err, &callErr) {
		return "generation failed"
	}
	switch callErr.Kind {
	case llm.KindUnconfigured:
		return "no AI credentials configured"
	case llm.KindQuota:
		return "AI quota temporarily exhausted"
	case llm.KindOverloaded:
		return "AI service is overloaded"
	default:
		return "generation failed"
	}
}

// persistAnalysis saves a finished report, tolerating storage failures.
func (s *Server) persistAnalysis(ctx context.Context, report *types.AnalysisReport) {
	breakdownJSON, err := json.Marshal(report.Breakdown)
	if err != nil {
		log.Printf("failed to encode breakdown: %v", err)
		return
	}

	var aiJSON []byte
	if report.AI != nil {
		if aiJSON, err = json.Marshal(report.AI); err != nil {
			log.Printf("failed to encode enhancement: %v", err)
			aiJSON = nil
		}
	}

	id, err := s.analyses.SaveAnalysis(ctx, report.UserID, breakdownJSON, aiJSON, report.Warning, report.ModelUsed)
	if err != nil {
		log.Printf("failed to save analysis: %v", err)
		return
	}
	report.ID = id
}

// handleListAnalyses returns a user's recent analyses, newest first.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if !s.requireSelf(w, r, id) {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	rows, err := s.analyses.ListAnalysesByUser(r.Context(), id, limit)
	if err != nil {
		log.Printf("failed to list analyses: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	reports := make([]*types.AnalysisReport, 0, len(rows))
	for i := range rows {
		report, err := reportFromRow(&rows[i])
		if err != nil {
			log.Printf("skipping malformed analysis %s: %v", rows[i].ID, err)
			continue
		}
		reports = append(reports, report)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": reports})
}

// handleGetAnalysis returns one saved analysis owned by the caller.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	row, err := s.analyses.GetAnalysis(r.Context(), id)
	if err != nil {
		log.Printf("failed to get analysis: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}
	if row == nil {
		nf := &ErrAnalysisNotFound{AnalysisID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	if !s.requireSelf(w, r, row.UserID) {
		return
	}

	report, err := reportFromRow(row)
	if err != nil {
		log.Printf("stored analysis %s is malformed: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Stored analysis is malformed")
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// reportFromRow decodes a stored analysis row into the API shape.
func reportFromRow(row *db.AnalysisReport) (*types.AnalysisReport, error) {
	report := &types.AnalysisReport{
		ID:        row.ID,
		UserID:    row.UserID,
		Warning:   row.Warning,
		ModelUsed: row.ModelUsed,
		CreatedAt: row.CreatedAt,
	}

	var breakdown scoring.Breakdown
	if err := json.Unmarshal(row.Breakdown, &breakdown); err != nil {
		return nil, err
	}
	report.Breakdown = &breakdown

	if len(row.AI) > 0 {
		var ai types.AIEnhancement
		if err := json.Unmarshal(row.AI, &ai); err != nil {
			return nil, err
		}
		report.AI = &ai
	}
	return report, nil
}
