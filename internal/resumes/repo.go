package resumes

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "resume not found" }

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) (Resume, error)
	GetByID(ctx context.Context, resumeID int) (Resume, error)
}
