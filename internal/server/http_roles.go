package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/prideworks/marquee/internal/events"
	"github.com/prideworks/marquee/internal/idgen"
	"github.com/prideworks/marquee/internal/model"
)

type createRoleInput struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Team        string `json:"team"`
	Commitment  string `json:"commitment"`
	Open        *bool  `json:"open"`
}

type updateRoleInput struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	Team        *string `json:"team"`
	Commitment  *string `json:"commitment"`
	Open        *bool   `json:"open"`
}

type createApplicationInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type setStatusInput struct {
	Status string `json:"status"`
}

// handleListRoles handles GET /v1/roles.
func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.RoleFilter{
		Team:     q.Get("team"),
		OpenOnly: q.Get("open") == "true",
		Search:   q.Get("search"),
	}

	roles, err := s.roles.ListRoles(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list roles")
		return
	}
	if roles == nil {
		roles = []*model.Role{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"roles": roles})
}

// handleCreateRole handles POST /v1/roles.
func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var in createRoleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	id, err := idgen.Generate(idgen.RolePrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	now := time.Now().UTC()
	role := &model.Role{
		ID:          id,
		Title:       in.Title,
		Summary:     in.Summary,
		Description: in.Description,
		Team:        in.Team,
		Commitment:  in.Commitment,
		Open:        true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Open != nil {
		role.Open = *in.Open
	}

	if err := s.roles.CreateRole(r.Context(), role); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create role")
		return
	}

	s.publish(r.Context(), events.TopicRoleCreated, events.RoleCreated{Role: role})
	writeJSON(w, http.StatusCreated, role)
}

// handleGetRole handles GET /v1/roles/{id}.
func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	role, err := s.roles.GetRole(r.Context(), r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "role not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get role")
		return
	}
	writeJSON(w, http.StatusOK, role)
}

// handleUpdateRole handles PATCH /v1/roles/{id}. Only fields present in the
// body are changed.
func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in updateRoleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	role, err := s.roles.GetRole(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "role not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get role")
		return
	}

	changes := make(map[string]any)
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		role.Title = *in.Title
		changes["title"] = role.Title
	}
	if in.Summary != nil {
		role.Summary = *in.Summary
		changes["summary"] = role.Summary
	}
	if in.Description != nil {
		role.Description = *in.Description
		changes["description"] = role.Description
	}
	if in.Team != nil {
		role.Team = *in.Team
		changes["team"] = role.Team
	}
	if in.Commitment != nil {
		role.Commitment = *in.Commitment
		changes["commitment"] = role.Commitment
	}
	if in.Open != nil {
		role.Open = *in.Open
		changes["open"] = role.Open
	}
	role.UpdatedAt = time.Now().UTC()

	if err := s.roles.UpdateRole(r.Context(), role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "role not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	s.publish(r.Context(), events.TopicRoleUpdated, events.RoleUpdated{Role: role, Changes: changes})
	writeJSON(w, http.StatusOK, role)
}

// handleDeleteRole handles DELETE /v1/roles/{id}. Applications cascade with
// the role.
func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.roles.DeleteRole(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "role not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete role")
		return
	}

	s.publish(r.Context(), events.TopicRoleDeleted, events.RoleDeleted{RoleID: id})
	w.WriteHeader(http.StatusNoContent)
}

// handleListApplications handles GET /v1/roles/{id}/applications.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := s.roles.GetRole(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "role not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get role")
		return
	}

	apps, err := s.roles.ListApplications(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if apps == nil {
		apps = []*model.Application{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

// handleCreateApplication handles POST /v1/roles/{id}/applications.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	roleID := r.PathValue("id")

	var in createApplicationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	role, err := s.roles.GetRole(r.Context(), roleID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "role not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get role")
		return
	}
	if !role.Open {
		writeError(w, http.StatusConflict, "role is not open for applications")
		return
	}

	id, err := idgen.Generate(idgen.ApplicationPrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	now := time.Now().UTC()
	app := &model.Application{
		ID:        id,
		RoleID:    roleID,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		Status:    model.ApplicationReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.roles.CreateApplication(r.Context(), app); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create application")
		return
	}

	s.publish(r.Context(), events.TopicApplicationReceived, events.ApplicationReceived{Application: app})
	writeJSON(w, http.StatusCreated, app)
}

// handleSetApplicationStatus handles POST /v1/applications/{id}/status.
func (s *Server) handleSetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in setStatusInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	status := model.ApplicationStatus(in.Status)
	if !status.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	app, err := s.roles.SetApplicationStatus(r.Context(), id, status)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update application")
		return
	}

	s.publish(r.Context(), events.TopicApplicationDecided, events.ApplicationDecided{Application: app})
	writeJSON(w, http.StatusOK, app)
}
