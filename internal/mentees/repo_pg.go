package mentees

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// FindOrCreate inserts skip-on-conflict by email and falls back to a select
// when another row already owns the address. The unique index on email keeps
// concurrent first-time inserts down to a single winner.
func (r *PGRepo) FindOrCreate(ctx context.Context, email, name, targetRole string) (int, error) {
	const insert = `
INSERT INTO mentees (email, name, target_role, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (email) DO NOTHING
RETURNING id`

	var id int
	err := r.DB.QueryRowContext(ctx, insert, email, nullableString(name), nullableString(targetRole)).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	const lookup = `SELECT id FROM mentees WHERE email = $1 LIMIT 1`
	if err := r.DB.QueryRowContext(ctx, lookup, email).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// GetByID fetches a mentee by id.
func (r *PGRepo) GetByID(ctx context.Context, menteeID int) (Mentee, error) {
	const query = `
SELECT id, email, name, target_role, created_at
FROM mentees
WHERE id = $1
LIMIT 1`

	var mentee Mentee
	var name sql.NullString
	var targetRole sql.NullString
	err := r.DB.QueryRowContext(ctx, query, menteeID).Scan(
		&mentee.ID,
		&mentee.Email,
		&name,
		&targetRole,
		&mentee.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Mentee{}, ErrNotFound
		}
		return Mentee{}, err
	}
	if name.Valid {
		mentee.Name = name.String
	}
	if targetRole.Valid {
		mentee.TargetRole = targetRole.String
	}
	return mentee, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
