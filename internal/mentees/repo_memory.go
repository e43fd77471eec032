package mentees

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int
	byID    map[int]Mentee
	byEmail map[string]int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID:  1,
		byID:    make(map[int]Mentee),
		byEmail: make(map[string]int),
	}
}

func (r *MemoryRepo) FindOrCreate(ctx context.Context, email, name, targetRole string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byEmail[email]; ok {
		return id, nil
	}
	id := r.nextID
	r.nextID++
	r.byID[id] = Mentee{
		ID:         id,
		Email:      email,
		Name:       name,
		TargetRole: targetRole,
		CreatedAt:  time.Now().UTC(),
	}
	r.byEmail[email] = id
	return id, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, menteeID int) (Mentee, error) {
	if err := ctx.Err(); err != nil {
		return Mentee{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	mentee, ok := r.byID[menteeID]
	if !ok {
		return Mentee{}, ErrNotFound
	}
	return mentee, nil
}

// Len reports how many mentees exist, for test assertions.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

var _ Repo = (*MemoryRepo)(nil)
