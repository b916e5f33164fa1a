package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hari10031/CodeSync-sub001/internal/sandbox"
	"github.com/hari10031/CodeSync-sub001/internal/types"
)

// handleExecute proxies a code submission to the execution sandbox.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req types.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.sandbox.Execute(r.Context(), sandbox.Request{
		Language: req.Language,
		Version:  req.Version,
		Code:     req.Code,
		Stdin:    req.Stdin,
	})
	if err != nil {
		var sandboxErr *sandbox.Error
		if errors.As(err, &sandboxErr) && sandboxErr.StatusCode == http.StatusBadRequest {
			s.errorResponse(w, http.StatusBadRequest, sandboxErr.Message)
			return
		}
		log.Printf("sandbox execution failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Code execution service is unavailable")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ExecuteResult{
		Language: result.Language,
		Version:  result.Version,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		ExitCode: result.ExitCode,
	})
}
