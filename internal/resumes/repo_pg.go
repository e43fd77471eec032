package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume and returns it with id and timestamp filled in.
func (r *PGRepo) Create(ctx context.Context, resume Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (mentee_id, file_url, file_type, text_content, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING id, created_at`

	var textContent any
	if resume.TextContent != "" {
		textContent = resume.TextContent
	}

	err := r.DB.QueryRowContext(ctx, query,
		resume.MenteeID,
		resume.FileURL,
		resume.FileType,
		textContent,
	).Scan(&resume.ID, &resume.CreatedAt)
	if err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// GetByID fetches a resume by id.
func (r *PGRepo) GetByID(ctx context.Context, resumeID int) (Resume, error) {
	const query = `
SELECT id, mentee_id, file_url, file_type, text_content, created_at
FROM resumes
WHERE id = $1
LIMIT 1`

	var resume Resume
	var textContent sql.NullString
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&resume.ID,
		&resume.MenteeID,
		&resume.FileURL,
		&resume.FileType,
		&textContent,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if textContent.Valid {
		resume.TextContent = textContent.String
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
