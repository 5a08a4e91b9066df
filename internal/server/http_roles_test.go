package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/prideworks/marquee/internal/coordinator"
	"github.com/prideworks/marquee/internal/events"
	"github.com/prideworks/marquee/internal/eventstore"
	"github.com/prideworks/marquee/internal/model"
	"github.com/prideworks/marquee/internal/ticketing"
)

// mockRoleStore is an in-memory RoleStore for handler tests.
type mockRoleStore struct {
	roles map[string]*model.Role
	apps  map[string]*model.Application
}

func newMockRoleStore() *mockRoleStore {
	return &mockRoleStore{
		roles: make(map[string]*model.Role),
		apps:  make(map[string]*model.Application),
	}
}

func (m *mockRoleStore) CreateRole(_ context.Context, role *model.Role) error {
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleStore) GetRole(_ context.Context, id string) (*model.Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockRoleStore) ListRoles(_ context.Context, filter model.RoleFilter) ([]*model.Role, error) {
	var out []*model.Role
	for _, r := range m.roles {
		if filter.Team != "" && r.Team != filter.Team {
			continue
		}
		if filter.OpenOnly && !r.Open {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRoleStore) UpdateRole(_ context.Context, role *model.Role) error {
	if _, ok := m.roles[role.ID]; !ok {
		return sql.ErrNoRows
	}
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleStore) DeleteRole(_ context.Context, id string) error {
	if _, ok := m.roles[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.roles, id)
	return nil
}

func (m *mockRoleStore) CreateApplication(_ context.Context, app *model.Application) error {
	m.apps[app.ID] = app
	return nil
}

func (m *mockRoleStore) ListApplications(_ context.Context, roleID string) ([]*model.Application, error) {
	var out []*model.Application
	for _, a := range m.apps {
		if a.RoleID == roleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRoleStore) SetApplicationStatus(_ context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	a.Status = status
	return a, nil
}

func (m *mockRoleStore) Close() error { return nil }

func newRolesTestServer(t *testing.T) (http.Handler, *mockRoleStore) {
	t.Helper()

	files := eventstore.New(filepath.Join(t.TempDir(), "events.json"))
	logger := slog.New(slog.DiscardHandler)
	coord := coordinator.New(files, &fakeHistory{}, "events.json", &events.NoopPublisher{}, logger)
	roles := newMockRoleStore()

	srv := New(coord, files, ticketing.NewClient("http://127.0.0.1:0", ""), &events.NoopPublisher{}, logger, Options{Roles: roles})
	return srv.NewHTTPHandler(""), roles
}

func createTestRole(t *testing.T, handler http.Handler) *model.Role {
	t.Helper()
	rec := doJSON(t, handler, "POST", "/v1/roles", map[string]any{
		"title": "Parade Marshal",
		"team":  "operations",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create role: %d, body = %s", rec.Code, rec.Body.String())
	}
	var role model.Role
	if err := json.NewDecoder(rec.Body).Decode(&role); err != nil {
		t.Fatalf("decode role: %v", err)
	}
	return &role
}

func TestCreateRole(t *testing.T) {
	handler, store := newRolesTestServer(t)

	role := createTestRole(t, handler)
	if role.ID == "" || role.Title != "Parade Marshal" {
		t.Errorf("role = %+v", role)
	}
	if !role.Open {
		t.Error("new roles should default to open")
	}
	if _, ok := store.roles[role.ID]; !ok {
		t.Error("role not persisted")
	}
}

func TestCreateRoleMissingTitle(t *testing.T) {
	handler, _ := newRolesTestServer(t)
	rec := doJSON(t, handler, "POST", "/v1/roles", map[string]any{"team": "operations"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetRoleNotFound(t *testing.T) {
	handler, _ := newRolesTestServer(t)
	rec := doJSON(t, handler, "GET", "/v1/roles/role-missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUpdateRolePartial(t *testing.T) {
	handler, _ := newRolesTestServer(t)
	role := createTestRole(t, handler)

	rec := doJSON(t, handler, "PATCH", "/v1/roles/"+role.ID, map[string]any{"open": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated model.Role
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Open {
		t.Error("open should be false")
	}
	if updated.Title != "Parade Marshal" {
		t.Errorf("title changed unexpectedly: %q", updated.Title)
	}
}

func TestDeleteRole(t *testing.T) {
	handler, store := newRolesTestServer(t)
	role := createTestRole(t, handler)

	rec := doJSON(t, handler, "DELETE", "/v1/roles/"+role.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, ok := store.roles[role.ID]; ok {
		t.Error("role still present after delete")
	}
}

func TestApplyToRole(t *testing.T) {
	handler, _ := newRolesTestServer(t)
	role := createTestRole(t, handler)

	rec := doJSON(t, handler, "POST", "/v1/roles/"+role.ID+"/applications", map[string]any{
		"name":    "Jess",
		"email":   "jess@example.org",
		"message": "Happy to help with setup.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var app model.Application
	if err := json.NewDecoder(rec.Body).Decode(&app); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if app.Status != model.ApplicationReceived {
		t.Errorf("status = %q", app.Status)
	}

	// Decide it.
	decide := doJSON(t, handler, "POST", "/v1/applications/"+app.ID+"/status", map[string]any{"status": "accepted"})
	if decide.Code != http.StatusOK {
		t.Fatalf("decide: %d, body = %s", decide.Code, decide.Body.String())
	}
	var decided model.Application
	if err := json.NewDecoder(decide.Body).Decode(&decided); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decided.Status != model.ApplicationAccepted {
		t.Errorf("status = %q", decided.Status)
	}
}

func TestApplyToClosedRoleConflict(t *testing.T) {
	handler, _ := newRolesTestServer(t)
	role := createTestRole(t, handler)

	if rec := doJSON(t, handler, "PATCH", "/v1/roles/"+role.ID, map[string]any{"open": false}); rec.Code != http.StatusOK {
		t.Fatalf("close role: %d", rec.Code)
	}
	rec := doJSON(t, handler, "POST", "/v1/roles/"+role.ID+"/applications", map[string]any{
		"name":  "Jess",
		"email": "jess@example.org",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestApplyInvalidEmail(t *testing.T) {
	handler, _ := newRolesTestServer(t)
	role := createTestRole(t, handler)

	rec := doJSON(t, handler, "POST", "/v1/roles/"+role.ID+"/applications", map[string]any{
		"name":  "Jess",
		"email": "not-an-email",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSetStatusUnknownValue(t *testing.T) {
	handler, _ := newRolesTestServer(t)
	rec := doJSON(t, handler, "POST", "/v1/applications/app-x/status", map[string]any{"status": "maybe"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
