package server

import (
	"log"
	"net/http"
)

// handleListContests returns the aggregated upcoming contest listing.
func (s *Server) handleListContests(w http.ResponseWriter, r *http.Request) {
	listing, err := s.contests.Listing(r.Context())
	if err != nil {
		log.Printf("contest listing failed: %v", err)
		s.errorResponse(w, http.StatusServiceUnavailable, "Contest sources are unavailable")
		return
	}
	s.jsonResponse(w, http.StatusOK, listing)
}
