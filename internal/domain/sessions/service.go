// Package sessions implementa el chequeo mínimo de credenciales (login).
// No hay protocolo de tokens acá; eso vive fuera de este servicio.
package sessions

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"adoptme-api/internal/domain/users"
	"adoptme-api/internal/platform/apperr"
)

var ErrBadCredentials = apperr.Unauthorized("invalid credentials")

type Service struct {
	users users.Repository
}

func NewService(usersRepo users.Repository) *Service {
	return &Service{users: usersRepo}
}

// Login compara contra el hash almacenado. Email inexistente y password
// incorrecto responden lo mismo: no se filtra cuál de los dos falló.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return users.User{}, ErrBadCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return users.User{}, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return users.User{}, ErrBadCredentials
	}

	return u, nil
}
