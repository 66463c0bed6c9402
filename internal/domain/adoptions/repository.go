package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, a Adoption) error
	GetByID(ctx context.Context, id string) (Adoption, error)
	// List devuelve todas las adopciones en orden de inserción.
	List(ctx context.Context) ([]Adoption, error)
}
