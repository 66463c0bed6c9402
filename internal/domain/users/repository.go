package users

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	InsertMany(ctx context.Context, us []User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error

	// AppendPet agrega el pet a la lista denormalizada del user.
	AppendPet(ctx context.Context, userID, petID string, at time.Time) error
}
