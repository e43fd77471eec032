package analyses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis and returns it with id and timestamp filled in.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) (Analysis, error) {
	const query = `
INSERT INTO analyses (resume_id, result, created_at)
VALUES ($1, $2, now())
RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctx, query,
		analysis.ResumeID,
		[]byte(analysis.Result),
	).Scan(&analysis.ID, &analysis.CreatedAt)
	if err != nil {
		return Analysis{}, err
	}
	return analysis, nil
}

// GetView returns the denormalized analysis record via an inner join chain.
func (r *PGRepo) GetView(ctx context.Context, analysisID int) (View, error) {
	const query = `
SELECT a.id, a.result, a.created_at,
       r.id, r.file_url, r.file_type,
       m.id, m.name, m.email, m.target_role
FROM analyses a
INNER JOIN resumes r ON r.id = a.resume_id
INNER JOIN mentees m ON m.id = r.mentee_id
WHERE a.id = $1
LIMIT 1`

	var view View
	var result []byte
	var name sql.NullString
	var targetRole sql.NullString
	err := r.DB.QueryRowContext(ctx, query, analysisID).Scan(
		&view.ID,
		&result,
		&view.CreatedAt,
		&view.Resume.ID,
		&view.Resume.FileURL,
		&view.Resume.FileType,
		&view.Mentee.ID,
		&name,
		&view.Mentee.Email,
		&targetRole,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	view.Result = result
	if name.Valid {
		view.Mentee.Name = name.String
	}
	if targetRole.Valid {
		view.Mentee.TargetRole = targetRole.String
	}
	return view, nil
}

var _ Repo = (*PGRepo)(nil)
