package pets

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	InsertMany(ctx context.Context, ps []Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)

	// MarkAdopted aplica el update condicional guardado por adopted == false
	// (flag + owner + updated_at en una sola escritura). Si no afecta filas
	// devuelve ErrAlreadyAdopted: dos requests concurrentes por el mismo pet
	// no pueden ganar ambas.
	MarkAdopted(ctx context.Context, petID, ownerUserID string, at time.Time) error
}
