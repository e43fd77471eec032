package mentees

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "mentee not found" }

// Repo defines persistence operations for mentees.
type Repo interface {
	// FindOrCreate resolves a mentee id by email, inserting a row on first
	// contact. Repeated calls with the same email return the same id.
	FindOrCreate(ctx context.Context, email, name, targetRole string) (int, error)
	GetByID(ctx context.Context, menteeID int) (Mentee, error)
}
