package analyses

import (
	"context"
	"errors"
	"sync"
	"time"

	"cvmentor-backend/internal/mentees"
	"cvmentor-backend/internal/resumes"
)

// ResumeSource resolves resumes for the in-memory join.
type ResumeSource interface {
	GetByID(ctx context.Context, resumeID int) (resumes.Resume, error)
}

// MenteeSource resolves mentees for the in-memory join.
type MenteeSource interface {
	GetByID(ctx context.Context, menteeID int) (mentees.Mentee, error)
}

// MemoryRepo is an in-memory Repo for dev mode and tests. The view join walks
// the companion repos the same way the SQL join walks the tables.
type MemoryRepo struct {
	mu       sync.RWMutex
	nextID   int
	analyses map[int]Analysis
	Resumes  ResumeSource
	Mentees  MenteeSource
}

func NewMemoryRepo(resumeSrc ResumeSource, menteeSrc MenteeSource) *MemoryRepo {
	return &MemoryRepo{
		nextID:   1,
		analyses: make(map[int]Analysis),
		Resumes:  resumeSrc,
		Mentees:  menteeSrc,
	}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis.ID = r.nextID
	r.nextID++
	analysis.CreatedAt = time.Now().UTC()
	r.analyses[analysis.ID] = analysis
	return analysis, nil
}

func (r *MemoryRepo) GetView(ctx context.Context, analysisID int) (View, error) {
	if err := ctx.Err(); err != nil {
		return View{}, err
	}
	r.mu.RLock()
	analysis, ok := r.analyses[analysisID]
	r.mu.RUnlock()
	if !ok {
		return View{}, ErrNotFound
	}

	resume, err := r.Resumes.GetByID(ctx, analysis.ResumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	mentee, err := r.Mentees.GetByID(ctx, resume.MenteeID)
	if err != nil {
		if errors.Is(err, mentees.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}

	return View{
		ID:        analysis.ID,
		Result:    analysis.Result,
		CreatedAt: analysis.CreatedAt,
		Resume: ResumeView{
			ID:       resume.ID,
			FileURL:  resume.FileURL,
			FileType: resume.FileType,
		},
		Mentee: MenteeView{
			ID:         mentee.ID,
			Name:       mentee.Name,
			Email:      mentee.Email,
			TargetRole: mentee.TargetRole,
		},
	}, nil
}

// Len reports how many analyses exist, for test assertions.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.analyses)
}

var _ Repo = (*MemoryRepo)(nil)
