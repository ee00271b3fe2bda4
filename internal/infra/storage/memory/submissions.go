package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "tripquote/internal/domain/booking"
)

// SubmissionRepository stores accepted bookings in memory.
type SubmissionRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.SubmissionID]*domainbooking.Submission
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{items: make(map[domainbooking.SubmissionID]*domainbooking.Submission)}
}

func (r *SubmissionRepository) ByID(ctx context.Context, id domainbooking.SubmissionID) (*domainbooking.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrSubmissionNotFound
	}
	return sub, nil
}

func (r *SubmissionRepository) Save(ctx context.Context, sub *domainbooking.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[sub.ID] = sub
	return nil
}

// List returns every submission, oldest first.
func (r *SubmissionRepository) List(ctx context.Context) []*domainbooking.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Submission, 0, len(r.items))
	for _, sub := range r.items {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

var _ domainbooking.Repository = (*SubmissionRepository)(nil)
