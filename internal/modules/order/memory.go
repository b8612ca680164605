package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryDrafts struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]Draft
}

// NewMemoryDraftRepository keeps drafts in process memory. Drafts are lost on restart.
func NewMemoryDraftRepository() DraftRepository {
	return &memoryDrafts{drafts: make(map[uuid.UUID]Draft)}
}

func (r *memoryDrafts) Create(_ context.Context, d *Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[d.ID] = cloneDraft(d)
	return nil
}

func (r *memoryDrafts) Get(_ context.Context, id string) (*Draft, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrDraftNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drafts[uid]
	if !ok {
		return nil, ErrDraftNotFound
	}
	c := cloneDraft(&d)
	return &c, nil
}

func (r *memoryDrafts) Update(_ context.Context, d *Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[d.ID]; !ok {
		return ErrDraftNotFound
	}
	d.UpdatedAt = time.Now().UTC()
	r.drafts[d.ID] = cloneDraft(d)
	return nil
}

func (r *memoryDrafts) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, uid)
	return nil
}

func cloneDraft(d *Draft) Draft {
	c := *d
	c.Lines = append([]Line(nil), d.Lines...)
	c.Catalog = append(c.Catalog[:0:0], d.Catalog...)
	return c
}
