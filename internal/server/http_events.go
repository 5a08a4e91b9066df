package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prideworks/marquee/internal/coordinator"
	"github.com/prideworks/marquee/internal/model"
	"github.com/prideworks/marquee/internal/ticketing"
)

// mutationOutcome is the response body for every event mutation. The state
// field always names the terminal state, including on error responses.
type mutationOutcome struct {
	State string `json:"state"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Error string `json:"error,omitempty"`
}

type addEventInput struct {
	Reference     string `json:"reference"`
	CustomSummary string `json:"custom_summary"`
	CustomCta     string `json:"custom_cta"`
}

// handleListEvents handles GET /v1/events. Reads bypass the mutation lock;
// the store's atomic save means a read never sees a half-written file.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	doc, err := s.files.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}
	if doc.Events == nil {
		doc.Events = []*model.Event{}
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleAddEvent handles POST /v1/events. The ticketing fetch happens before
// the mutation lock is taken, so a slow upstream never blocks other writers.
func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var in addEventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Reference) == "" {
		writeError(w, http.StatusBadRequest, "reference is required")
		return
	}

	id, err := ticketing.ResolveID(in.Reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := s.tickets.FetchEvent(r.Context(), id)
	if err != nil {
		var ue *ticketing.UpstreamError
		if errors.As(err, &ue) {
			writeError(w, http.StatusBadGateway, ue.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev.CustomSummary = in.CustomSummary
	ev.CustomCta = in.CustomCta

	ctx, cancel := s.mutationContext(r.Context())
	defer cancel()

	res := s.coord.Add(ctx, ev)
	s.writeOutcome(w, res, http.StatusCreated)
}

// handleRemoveEvent handles DELETE /v1/events/{id}.
func (s *Server) handleRemoveEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := s.mutationContext(r.Context())
	defer cancel()

	res := s.coord.Remove(ctx, id)
	if res.State == coordinator.StateRejected && strings.Contains(errText(res.Err), "not found") {
		writeJSON(w, http.StatusNotFound, outcomeBody(res))
		return
	}
	s.writeOutcome(w, res, http.StatusOK)
}

// handleRetryPush handles POST /v1/events/push. It re-runs push only, for
// recovering from a failed_push outcome once the remote is reachable again.
func (s *Server) handleRetryPush(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.mutationContext(r.Context())
	defer cancel()

	res := s.coord.RetryPush(ctx)
	s.writeOutcome(w, res, http.StatusOK)
}

func (s *Server) mutationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.mutationTimeout)
}

// writeOutcome maps a mutation result to an HTTP status. successStatus is
// used for the succeeded state so add can answer 201 while remove and push
// answer 200.
func (s *Server) writeOutcome(w http.ResponseWriter, res coordinator.Result, successStatus int) {
	status := successStatus
	switch res.State {
	case coordinator.StateSucceeded:
	case coordinator.StateRejected:
		status = http.StatusConflict
	case coordinator.StateNoop:
		status = http.StatusConflict
	case coordinator.StateFailedIO, coordinator.StateFailedHistory:
		status = http.StatusInternalServerError
	case coordinator.StateFailedPush:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, outcomeBody(res))
}

func outcomeBody(res coordinator.Result) mutationOutcome {
	return mutationOutcome{
		State: string(res.State),
		ID:    res.ID,
		Title: res.Title,
		Error: errText(res.Err),
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
