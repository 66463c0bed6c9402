package pets

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/ident"
)

var (
	ErrInvalidInput   = apperr.InvalidArgument("invalid pet data")
	ErrInvalidID      = apperr.InvalidArgument("invalid pet id")
	ErrNotFound       = apperr.NotFound("pet not found")
	ErrAlreadyAdopted = apperr.Conflict("pet already adopted")
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
	Name      string
	Species   string
	BirthDate *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Species:   Species(strings.ToLower(strings.TrimSpace(in.Species))),
		BirthDate: in.BirthDate,
		Adopted:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if !ident.IsValid(id) {
		return Pet{}, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// InsertMany existe para el seeding de mocks; no aplica reglas de negocio.
func (s *Service) InsertMany(ctx context.Context, ps []Pet) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}
	if err := s.repo.InsertMany(ctx, ps); err != nil {
		return 0, err
	}
	return len(ps), nil
}
