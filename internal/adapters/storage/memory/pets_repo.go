package memory

import (
	"context"
	"sync"
	"time"

	"adoptme-api/internal/domain/pets"
	"adoptme-api/internal/platform/ident"
)

type petRepo struct {
	mu    sync.RWMutex
	byID  map[string]pets.Pet
	order []string // orden de inserción (el "store-default" del listado)
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(p)
}

func (r *petRepo) InsertMany(ctx context.Context, ps []pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range ps {
		if err := r.insertLocked(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *petRepo) insertLocked(p pets.Pet) error {
	if p.ID == "" {
		return errIDRequired
	}
	if _, exists := r.byID[p.ID]; exists {
		return errAlreadyExists
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	// formato inválido: absent, sin tocar el store (misma regla que Postgres)
	if !ident.IsValid(id) {
		return pets.Pet{}, pets.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// MarkAdopted es el compare-and-swap del flag bajo el lock:
// el equivalente in-memory del UPDATE ... WHERE adopted = false.
func (r *petRepo) MarkAdopted(ctx context.Context, petID, ownerUserID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[petID]
	if !ok || p.Adopted {
		return pets.ErrAlreadyAdopted
	}

	p.Adopted = true
	p.OwnerUserID = ownerUserID
	p.UpdatedAt = at
	r.byID[petID] = p
	return nil
}
