package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/hari10031/CodeSync-sub001/internal/server/middleware"
	"github.com/hari10031/CodeSync-sub001/internal/types"
)

// pathUUID parses the {id} path segment as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	return id, err == nil
}

// requireSelf checks that the authenticated user matches the target user.
func (s *Server) requireSelf(w http.ResponseWriter, r *http.Request, target uuid.UUID) bool {
	authedID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if authedID != target {
		err := &ErrForbidden{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return false
	}
	return true
}

// handleGetUser returns a user profile. Users can only read their own.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if !s.requireSelf(w, r, id) {
		return
	}

	user, err := s.userService.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

// handleUpdateUser applies a partial profile update.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if !s.requireSelf(w, r, id) {
		return
	}

	var req types.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := s.userService.Update(r.Context(), id, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}
