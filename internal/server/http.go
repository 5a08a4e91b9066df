package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/events", s.handleListEvents)
	mux.HandleFunc("POST /v1/events", s.handleAddEvent)
	mux.HandleFunc("DELETE /v1/events/{id}", s.handleRemoveEvent)
	mux.HandleFunc("POST /v1/events/push", s.handleRetryPush)
	mux.HandleFunc("GET /v1/health", s.handleHealth)

	if s.roles != nil {
		mux.HandleFunc("GET /v1/roles", s.handleListRoles)
		mux.HandleFunc("POST /v1/roles", s.handleCreateRole)
		mux.HandleFunc("GET /v1/roles/{id}", s.handleGetRole)
		mux.HandleFunc("PATCH /v1/roles/{id}", s.handleUpdateRole)
		mux.HandleFunc("DELETE /v1/roles/{id}", s.handleDeleteRole)
		mux.HandleFunc("GET /v1/roles/{id}/applications", s.handleListApplications)
		mux.HandleFunc("POST /v1/roles/{id}/applications", s.handleCreateApplication)
		mux.HandleFunc("POST /v1/applications/{id}/status", s.handleSetApplicationStatus)
	}

	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
