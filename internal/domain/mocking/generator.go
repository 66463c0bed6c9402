// Package mocking genera datos sintéticos para seeding (users/pets falsos).
package mocking

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"adoptme-api/internal/domain/pets"
	"adoptme-api/internal/domain/users"
)

// MockPassword es el password plano de todos los users generados.
const MockPassword = "coder123"

const (
	DefaultUserCount = 50
	DefaultPetCount  = 20
)

type Generator struct {
	faker *gofakeit.Faker
	// hash de MockPassword calculado una sola vez: bcrypt por user generado
	// haría eterno un seed de 50
	passwordHash string
	now          func() time.Time
}

func NewGenerator() (*Generator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(MockPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash mock password: %w", err)
	}
	return &Generator{
		faker:        gofakeit.New(0),
		passwordHash: string(hash),
		now:          time.Now,
	}, nil
}

func (g *Generator) User() users.User {
	first := g.faker.FirstName()
	last := g.faker.LastName()
	// sufijo aleatorio para no chocar con el índice único de email al seedear
	email := strings.ToLower(fmt.Sprintf("%s.%s.%s@%s",
		first, last, g.faker.LetterN(6), g.faker.DomainName()))

	role := users.RoleUser
	if g.faker.Bool() {
		role = users.RoleAdmin
	}

	now := g.now()
	return users.User{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  g.passwordHash,
		Role:      role,
		Pets:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (g *Generator) Users(n int) []users.User {
	if n <= 0 {
		n = DefaultUserCount
	}
	out := make([]users.User, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.User())
	}
	return out
}

func (g *Generator) Pet() pets.Pet {
	now := g.now()
	birth := g.faker.DateRange(now.AddDate(-15, 0, 0), now)

	return pets.Pet{
		ID:        uuid.NewString(),
		Name:      g.faker.PetName(),
		Species:   pets.AllSpecies[g.faker.Number(0, len(pets.AllSpecies)-1)],
		BirthDate: &birth,
		Adopted:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (g *Generator) Pets(n int) []pets.Pet {
	if n <= 0 {
		n = DefaultPetCount
	}
	out := make([]pets.Pet, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Pet())
	}
	return out
}
