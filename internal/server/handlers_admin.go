package server

import "net/http"

// handleCredentialStatus reports the health of the generation credential
// pool. The snapshot carries no key material.
func (s *Server) handleCredentialStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"credentials": s.pool.Snapshot(),
	})
}
