package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/prideworks/marquee/internal/model"
)

// roleColumns is the column list used for SELECT statements on the roles table.
const roleColumns = `id, title, summary, description, team, commitment, open,
	created_at, updated_at`

// applicationColumns is the column list for the applications table.
const applicationColumns = `id, role_id, name, email, message, status,
	created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateRole(ctx context.Context, db executor, r *model.Role) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO roles (
			id, title, summary, description, team, commitment, open,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID,
		r.Title,
		nullString(r.Summary),
		nullString(r.Description),
		nullString(r.Team),
		nullString(r.Commitment),
		r.Open,
		r.CreatedAt,
		r.UpdatedAt,
	)
	return err
}

func queryGetRole(ctx context.Context, db executor, id string) (*model.Role, error) {
	row := db.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)
	return scanRole(row)
}

func queryListRoles(ctx context.Context, db executor, filter model.RoleFilter) ([]*model.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles`
	var conds []string
	var args []any

	if filter.Team != "" {
		args = append(args, filter.Team)
		conds = append(conds, "team = $"+strconv.Itoa(len(args)))
	}
	if filter.OpenOnly {
		conds = append(conds, "open")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, "(title ILIKE $"+n+" OR summary ILIKE $"+n+")")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*model.Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func queryUpdateRole(ctx context.Context, db executor, r *model.Role) error {
	res, err := db.ExecContext(ctx, `
		UPDATE roles SET
			title = $2, summary = $3, description = $4, team = $5,
			commitment = $6, open = $7, updated_at = $8
		WHERE id = $1`,
		r.ID,
		r.Title,
		nullString(r.Summary),
		nullString(r.Description),
		nullString(r.Team),
		nullString(r.Commitment),
		r.Open,
		r.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryDeleteRole(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryCreateApplication(ctx context.Context, db executor, a *model.Application) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO applications (
			id, role_id, name, email, message, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID,
		a.RoleID,
		a.Name,
		a.Email,
		nullString(a.Message),
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func queryListApplications(ctx context.Context, db executor, roleID string) ([]*model.Application, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE role_id = $1 ORDER BY created_at`,
		roleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func querySetApplicationStatus(ctx context.Context, db executor, id string, status model.ApplicationStatus) (*model.Application, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE applications SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+applicationColumns,
		id, string(status),
	)
	return scanApplication(row)
}

// requireRow converts a zero-row update/delete into sql.ErrNoRows so the
// transport layer can map it to 404.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
