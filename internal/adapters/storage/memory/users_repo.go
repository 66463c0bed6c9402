package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"adoptme-api/internal/domain/users"
	"adoptme-api/internal/platform/ident"
)

type userRepo struct {
	mu    sync.RWMutex
	byID  map[string]users.User
	order []string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID: make(map[string]users.User),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(u)
}

func (r *userRepo) InsertMany(ctx context.Context, us []users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range us {
		if err := r.insertLocked(u); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepo) insertLocked(u users.User) error {
	if u.ID == "" {
		return errIDRequired
	}
	if _, exists := r.byID[u.ID]; exists {
		return errAlreadyExists
	}
	for _, other := range r.byID {
		if other.Email == u.Email {
			return users.ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	if !ident.IsValid(id) {
		return users.User{}, users.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return users.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return users.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *userRepo) AppendPet(ctx context.Context, userID, petID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return users.ErrNotFound
	}
	u.Pets = append(u.Pets, petID)
	u.UpdatedAt = at
	r.byID[userID] = u
	return nil
}
