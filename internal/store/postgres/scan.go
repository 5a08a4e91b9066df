package postgres

import (
	"database/sql"

	"github.com/prideworks/marquee/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRole scans a single row into a model.Role.
// The row must contain columns in the order defined by roleColumns.
func scanRole(row scannable) (*model.Role, error) {
	var r model.Role
	var (
		summary     sql.NullString
		description sql.NullString
		team        sql.NullString
		commitment  sql.NullString
	)

	err := row.Scan(
		&r.ID,
		&r.Title,
		&summary,
		&description,
		&team,
		&commitment,
		&r.Open,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Summary = summary.String
	r.Description = description.String
	r.Team = team.String
	r.Commitment = commitment.String

	return &r, nil
}

// scanApplication scans a single row into a model.Application.
func scanApplication(row scannable) (*model.Application, error) {
	var a model.Application
	var (
		message sql.NullString
		status  string
	)

	err := row.Scan(
		&a.ID,
		&a.RoleID,
		&a.Name,
		&a.Email,
		&message,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Message = message.String
	a.Status = model.ApplicationStatus(status)

	return &a, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
