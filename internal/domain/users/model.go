package users

import "time"

// Role define los roles soportados.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID string

	FirstName string
	LastName  string
	Email     string // único

	// Password siempre es el hash bcrypt; el texto plano no se persiste
	// ni se serializa nunca.
	Password string
	Role     Role

	// Pets es la lista denormalizada de mascotas adoptadas. La mantiene
	// (best-effort) el workflow de adopción; la fuente de verdad es el
	// owner_user_id del pet.
	Pets []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
