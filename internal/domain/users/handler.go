package users

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"adoptme-api/internal/platform/web"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service, rp *web.Responder) {
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc, rp))
		ur.Post("/", createUserHandler(svc, rp))
		ur.Get("/{uid}", getUserHandler(svc, rp))
		ur.Put("/{uid}", updateUserHandler(svc, rp))
		ur.Delete("/{uid}", deleteUserHandler(svc, rp))
	})
}

type createUserRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	Role      string `json:"role"       validate:"omitempty,oneof=user admin"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Role      *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// userResponse nunca incluye el password (ni siquiera hasheado).
type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Pets      []string  `json:"pets"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listUsersHandler godoc
// @Summary  Listar usuarios
// @Tags     Users
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /users [get]
func listUsersHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			rp.Fail(w, r, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, ToUserResponse(u))
		}
		web.Success(w, http.StatusOK, out)
	}
}

// createUserHandler godoc
// @Summary  Crear usuario
// @Tags     Users
// @Accept   json
// @Produce  json
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Router   /users [post]
func createUserHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rp.Fail(w, r, ErrInvalidInput)
			return
		}
		if err := validate.Struct(&req); err != nil {
			rp.Fail(w, r, ErrInvalidInput)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			Role:      req.Role,
		})
		if err != nil {
			rp.Fail(w, r, err)
			return
		}

		web.Success(w, http.StatusCreated, ToUserResponse(u))
	}
}

// getUserHandler godoc
// @Summary  Obtener usuario por ID
// @Tags     Users
// @Produce  json
// @Param    uid path string true "User ID"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /users/{uid} [get]
func getUserHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "uid"))
		if err != nil {
			rp.Fail(w, r, err)
			return
		}
		web.Success(w, http.StatusOK, ToUserResponse(u))
	}
}

// updateUserHandler godoc
// @Summary  Actualizar usuario (parcial)
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    uid path string true "User ID"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /users/{uid} [put]
func updateUserHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rp.Fail(w, r, ErrInvalidInput)
			return
		}
		if err := validate.Struct(&req); err != nil {
			rp.Fail(w, r, ErrInvalidInput)
			return
		}

		u, err := svc.Update(r.Context(), chi.URLParam(r, "uid"), UpdateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			Role:      req.Role,
		})
		if err != nil {
			rp.Fail(w, r, err)
			return
		}

		web.Success(w, http.StatusOK, ToUserResponse(u))
	}
}

// deleteUserHandler godoc
// @Summary  Eliminar usuario
// @Tags     Users
// @Produce  json
// @Param    uid path string true "User ID"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /users/{uid} [delete]
func deleteUserHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "uid")); err != nil {
			rp.Fail(w, r, err)
			return
		}
		web.Success(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "uid")})
	}
}

// ToUserResponse es la única vía de serialización de un User hacia afuera.
// La exportamos para que sessions reuse el mismo shape.
func ToUserResponse(u User) userResponse {
	pets := u.Pets
	if pets == nil {
		pets = []string{}
	}
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		Pets:      pets,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
