package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/ident"
)

var (
	ErrInvalidInput = apperr.InvalidArgument("invalid user data")
	ErrInvalidID    = apperr.InvalidArgument("invalid user id")
	ErrNotFound     = apperr.NotFound("user not found")
	ErrEmailTaken   = apperr.Conflict("email already registered")
	// ErrHasAdoptions: el user es referenciado por registros de adopción
	// (inmutables), así que no se puede borrar.
	ErrHasAdoptions = apperr.Conflict("user has adoption records")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if first == "" || last == "" || email == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}

	role := Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = RoleUser
	}
	if !ValidRole(role) {
		return User{}, ErrInvalidInput
	}

	// Unicidad de email: chequeo acá + índice único en Postgres como respaldo.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperr.Internal("hash password", err)
	}

	now := s.now()
	u := User{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		Pets:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	if !ident.IsValid(id) {
		return User{}, ErrInvalidID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return User{}, ErrInvalidInput
		}
		u.FirstName = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return User{}, ErrInvalidInput
		}
		u.LastName = v
	}
	if in.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Email))
		if v == "" {
			return User{}, ErrInvalidInput
		}
		if v != u.Email {
			if _, err := s.repo.GetByEmail(ctx, v); err == nil {
				return User{}, ErrEmailTaken
			} else if !errors.Is(err, ErrNotFound) {
				return User{}, err
			}
		}
		u.Email = v
	}
	if in.Password != nil {
		if *in.Password == "" {
			return User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, apperr.Internal("hash password", err)
		}
		u.Password = string(hash)
	}
	if in.Role != nil {
		role := Role(strings.TrimSpace(*in.Role))
		if !ValidRole(role) {
			return User{}, ErrInvalidInput
		}
		u.Role = role
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if !ident.IsValid(id) {
		return User{}, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !ident.IsValid(id) {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

// InsertMany existe para el seeding de mocks; no aplica reglas de negocio.
func (s *Service) InsertMany(ctx context.Context, us []User) (int, error) {
	if len(us) == 0 {
		return 0, nil
	}
	if err := s.repo.InsertMany(ctx, us); err != nil {
		return 0, err
	}
	return len(us), nil
}
