package adoptions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adoptme-api/internal/domain/pets"
	"adoptme-api/internal/domain/users"
	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/ident"
	"adoptme-api/internal/platform/logger"
)

var (
	ErrInvalidID   = apperr.InvalidArgument("invalid adoption id")
	ErrInvalidRefs = apperr.InvalidArgument("invalid user or pet id")
	ErrNotFound    = apperr.NotFound("adoption not found")
)

// Service orquesta la transición available -> adopted: validación cruzada
// user/pet y el update condicional que garantiza un solo ganador por pet.
type Service struct {
	adoptions Repository
	users     users.Repository
	pets      pets.Repository

	log logger.Logger
	now func() time.Time
}

func NewService(adoptions Repository, users users.Repository, pets pets.Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		adoptions: adoptions,
		users:     users,
		pets:      pets,
		log:       log,
		now:       time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Adoption, error) {
	return s.adoptions.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Adoption, error) {
	if !ident.IsValid(id) {
		return Adoption{}, ErrInvalidID
	}
	return s.adoptions.GetByID(ctx, id)
}

// Create ejecuta el workflow completo:
//  1. formato de ambos ids
//  2. existe el user
//  3. existe el pet
//  4. update condicional adopted==false (un solo ganador ante concurrencia;
//     cero filas afectadas == conflicto, igual que "ya adoptado")
//  5. registro de adopción + append a la lista del user (best-effort)
//
// El flag del pet + el registro son la transición autoritativa; si el append
// del paso 5 falla NO se revierte nada (el owner_user_id del pet queda como
// fuente de verdad para reconciliar).
func (s *Service) Create(ctx context.Context, userID, petID string) (Adoption, error) {
	if !ident.IsValid(userID) || !ident.IsValid(petID) {
		return Adoption{}, ErrInvalidRefs
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Adoption{}, err
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Adoption{}, err
	}
	// fast path: el chequeo real es el update condicional de abajo
	if p.Adopted {
		return Adoption{}, pets.ErrAlreadyAdopted
	}

	now := s.now()
	if err := s.pets.MarkAdopted(ctx, p.ID, u.ID, now); err != nil {
		return Adoption{}, err
	}

	a := Adoption{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		PetID:     p.ID,
		CreatedAt: now,
	}
	if err := s.adoptions.Create(ctx, a); err != nil {
		// el pet ya quedó adoptado; ventana de inconsistencia aceptada,
		// reconciliable via pets.owner_user_id
		s.log.Error("adoption record failed after pet transition", map[string]any{
			"user_id": u.ID,
			"pet_id":  p.ID,
			"error":   err.Error(),
		})
		return Adoption{}, err
	}

	// denormalización best-effort: su falla nunca revierte la adopción
	if err := s.users.AppendPet(ctx, u.ID, p.ID, now); err != nil {
		s.log.Warn("append pet to user failed", map[string]any{
			"user_id": u.ID,
			"pet_id":  p.ID,
			"error":   err.Error(),
		})
	}

	return a, nil
}
