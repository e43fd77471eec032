package resumes

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int
	resumes map[int]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, resumes: make(map[int]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume.ID = r.nextID
	r.nextID++
	resume.CreatedAt = time.Now().UTC()
	r.resumes[resume.ID] = resume
	return resume, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, resumeID int) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// Len reports how many resumes exist, for test assertions.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resumes)
}

var _ Repo = (*MemoryRepo)(nil)
