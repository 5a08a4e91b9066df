package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "tok-123")
}

func TestAddEventOutcome(t *testing.T) {
	c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("auth = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"state":"succeeded","id":"123456789","title":"Pride Picnic"}`))
	})

	out, err := c.AddEvent(context.Background(), &AddEventRequest{Reference: "123456789"})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if !out.Succeeded() || out.ID != "123456789" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestAddEventFailedPushCarriesState(t *testing.T) {
	c := newStubServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"state":"failed_push","id":"123456789","error":"remote unreachable"}`))
	})

	out, err := c.AddEvent(context.Background(), &AddEventRequest{Reference: "123456789"})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if out.Succeeded() || out.State != "failed_push" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestAddEventBadRequestIsAPIError(t *testing.T) {
	c := newStubServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid event reference"}`))
	})

	_, err := c.AddEvent(context.Background(), &AddEventRequest{Reference: "nope"})
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if ae.StatusCode != http.StatusBadRequest || ae.Message != "invalid event reference" {
		t.Errorf("apiError = %+v", ae)
	}
}

func TestListEvents(t *testing.T) {
	c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/events" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"version":"1","lastUpdated":null,"events":[{"id":"1","title":"Quiz Night","start_date":"2026-03-01T19:00:00Z","end_date":"2026-03-01T22:00:00Z"}]}`))
	})

	doc, err := c.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(doc.Events) != 1 || doc.Events[0].Title != "Quiz Night" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestDeleteRoleNoContent(t *testing.T) {
	c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteRole(context.Background(), "role-abc"); err != nil {
		t.Fatalf("DeleteRole: %v", err)
	}
}

func TestHealth(t *testing.T) {
	c := newStubServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q", status)
	}
}
