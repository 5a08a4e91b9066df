package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/prideworks/marquee/internal/model"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// roleRowColumns is the column list for scanRole results.
var roleRowColumns = []string{
	"id", "title", "summary", "description", "team", "commitment", "open",
	"created_at", "updated_at",
}

// applicationRowColumns is the column list for scanApplication results.
var applicationRowColumns = []string{
	"id", "role_id", "name", "email", "message", "status",
	"created_at", "updated_at",
}

func TestScanHelpers(t *testing.T) {
	if nullString("").Valid {
		t.Error("nullString(\"\") should be invalid")
	}
	if ns := nullString("hello"); !ns.Valid || ns.String != "hello" {
		t.Errorf("nullString(\"hello\") = %v", ns)
	}
}

func TestQueryCreateRole(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO roles").
		WithArgs("role-abc", "Parade Marshal", sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), true, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	role := &model.Role{
		ID:        "role-abc",
		Title:     "Parade Marshal",
		Open:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := queryCreateRole(context.Background(), db, role); err != nil {
		t.Fatalf("queryCreateRole: %v", err)
	}
}

func TestQueryGetRole(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(roleRowColumns).
		AddRow("role-abc", "Parade Marshal", "Keep the route clear", nil,
			"operations", nil, true, now, now)
	mock.ExpectQuery("SELECT .+ FROM roles WHERE id = \\$1").
		WithArgs("role-abc").
		WillReturnRows(rows)

	role, err := queryGetRole(context.Background(), db, "role-abc")
	if err != nil {
		t.Fatalf("queryGetRole: %v", err)
	}
	if role.Title != "Parade Marshal" {
		t.Errorf("title = %q, want %q", role.Title, "Parade Marshal")
	}
	if role.Team != "operations" {
		t.Errorf("team = %q, want %q", role.Team, "operations")
	}
	if role.Commitment != "" {
		t.Errorf("commitment = %q, want empty", role.Commitment)
	}
}

func TestQueryGetRoleNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM roles WHERE id = \\$1").
		WithArgs("role-missing").
		WillReturnRows(sqlmock.NewRows(roleRowColumns))

	_, err := queryGetRole(context.Background(), db, "role-missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestQueryListRolesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(roleRowColumns).
		AddRow("role-abc", "Parade Marshal", nil, nil, "operations", nil, true, now, now)
	mock.ExpectQuery("SELECT .+ FROM roles WHERE team = \\$1 AND open AND \\(title ILIKE \\$2 OR summary ILIKE \\$2\\)").
		WithArgs("operations", "%marshal%").
		WillReturnRows(rows)

	roles, err := queryListRoles(context.Background(), db, model.RoleFilter{
		Team:     "operations",
		OpenOnly: true,
		Search:   "marshal",
	})
	if err != nil {
		t.Fatalf("queryListRoles: %v", err)
	}
	if len(roles) != 1 {
		t.Fatalf("got %d roles, want 1", len(roles))
	}
}

func TestQueryListRolesNoFilters(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM roles ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(roleRowColumns))

	roles, err := queryListRoles(context.Background(), db, model.RoleFilter{})
	if err != nil {
		t.Fatalf("queryListRoles: %v", err)
	}
	if len(roles) != 0 {
		t.Fatalf("got %d roles, want 0", len(roles))
	}
}

func TestQueryUpdateRoleNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectExec("UPDATE roles SET").
		WithArgs("role-missing", "New Title", sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), true, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := queryUpdateRole(context.Background(), db, &model.Role{
		ID:        "role-missing",
		Title:     "New Title",
		Open:      true,
		UpdatedAt: now,
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestQueryDeleteRole(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM roles WHERE id = \\$1").
		WithArgs("role-abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryDeleteRole(context.Background(), db, "role-abc"); err != nil {
		t.Fatalf("queryDeleteRole: %v", err)
	}
}

func TestQueryCreateApplication(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("app-xyz", "role-abc", "Jess", "jess@example.org",
			sqlmock.AnyArg(), "received", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := &model.Application{
		ID:        "app-xyz",
		RoleID:    "role-abc",
		Name:      "Jess",
		Email:     "jess@example.org",
		Status:    model.ApplicationReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := queryCreateApplication(context.Background(), db, app); err != nil {
		t.Fatalf("queryCreateApplication: %v", err)
	}
}

func TestQueryListApplications(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(applicationRowColumns).
		AddRow("app-xyz", "role-abc", "Jess", "jess@example.org", nil, "received", now, now)
	mock.ExpectQuery("SELECT .+ FROM applications WHERE role_id = \\$1").
		WithArgs("role-abc").
		WillReturnRows(rows)

	apps, err := queryListApplications(context.Background(), db, "role-abc")
	if err != nil {
		t.Fatalf("queryListApplications: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("got %d applications, want 1", len(apps))
	}
	if apps[0].Status != model.ApplicationReceived {
		t.Errorf("status = %q, want %q", apps[0].Status, model.ApplicationReceived)
	}
}

func TestQuerySetApplicationStatus(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(applicationRowColumns).
		AddRow("app-xyz", "role-abc", "Jess", "jess@example.org", nil, "accepted", now, now)
	mock.ExpectQuery("UPDATE applications SET status = \\$2").
		WithArgs("app-xyz", "accepted").
		WillReturnRows(rows)

	app, err := querySetApplicationStatus(context.Background(), db, "app-xyz", model.ApplicationAccepted)
	if err != nil {
		t.Fatalf("querySetApplicationStatus: %v", err)
	}
	if app.Status != model.ApplicationAccepted {
		t.Errorf("status = %q, want %q", app.Status, model.ApplicationAccepted)
	}
}
