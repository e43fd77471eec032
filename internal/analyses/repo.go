package analyses

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "analysis not found" }

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) (Analysis, error)
	// GetView joins analysis, resume and mentee by id chain. A broken chain
	// surfaces as ErrNotFound, same as a missing analysis.
	GetView(ctx context.Context, analysisID int) (View, error)
}
