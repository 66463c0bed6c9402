package memory

import (
	"context"
	"sync"

	"adoptme-api/internal/domain/adoptions"
	"adoptme-api/internal/platform/ident"
)

type adoptionRepo struct {
	mu    sync.RWMutex
	byID  map[string]adoptions.Adoption
	order []string
}

func NewAdoptionRepo() adoptions.Repository {
	return &adoptionRepo{
		byID: make(map[string]adoptions.Adoption),
	}
}

func (r *adoptionRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errIDRequired
	}
	if _, exists := r.byID[a.ID]; exists {
		return errAlreadyExists
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	if !ident.IsValid(id) {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}
	return a, nil
}

func (r *adoptionRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Adoption, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
