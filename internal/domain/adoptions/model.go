package adoptions

import "time"

// Adoption es el registro durable de una adopción: un user, un pet, una vez.
// Inmutable después de creado; no existe "des-adoptar".
type Adoption struct {
	ID string

	UserID string
	PetID  string

	CreatedAt time.Time
}
