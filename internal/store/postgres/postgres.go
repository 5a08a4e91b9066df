// Package postgres implements the store.RoleStore interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/prideworks/marquee/internal/model"
	"github.com/prideworks/marquee/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RoleStore implements store.RoleStore backed by a PostgreSQL database.
type RoleStore struct {
	db *sql.DB
}

// Compile-time check that RoleStore implements store.RoleStore.
var _ store.RoleStore = (*RoleStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*RoleStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &RoleStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *RoleStore) Close() error {
	return s.db.Close()
}

func (s *RoleStore) CreateRole(ctx context.Context, role *model.Role) error {
	return queryCreateRole(ctx, s.db, role)
}

func (s *RoleStore) GetRole(ctx context.Context, id string) (*model.Role, error) {
	return queryGetRole(ctx, s.db, id)
}

func (s *RoleStore) ListRoles(ctx context.Context, filter model.RoleFilter) ([]*model.Role, error) {
	return queryListRoles(ctx, s.db, filter)
}

func (s *RoleStore) UpdateRole(ctx context.Context, role *model.Role) error {
	return queryUpdateRole(ctx, s.db, role)
}

func (s *RoleStore) DeleteRole(ctx context.Context, id string) error {
	return queryDeleteRole(ctx, s.db, id)
}

func (s *RoleStore) CreateApplication(ctx context.Context, app *model.Application) error {
	return queryCreateApplication(ctx, s.db, app)
}

func (s *RoleStore) ListApplications(ctx context.Context, roleID string) ([]*model.Application, error) {
	return queryListApplications(ctx, s.db, roleID)
}

func (s *RoleStore) SetApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	return querySetApplicationStatus(ctx, s.db, id, status)
}
