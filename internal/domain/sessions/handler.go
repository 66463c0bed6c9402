package sessions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adoptme-api/internal/domain/users"
	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/web"
)

func RegisterRoutes(r chi.Router, svc *Service, rp *web.Responder) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/login", loginHandler(svc, rp))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginHandler godoc
// @Summary  Login (chequeo de credenciales)
// @Tags     Sessions
// @Accept   json
// @Produce  json
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  401 {object} map[string]any
// @Router   /sessions/login [post]
func loginHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rp.Fail(w, r, apperr.InvalidArgument("invalid json body"))
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			rp.Fail(w, r, err)
			return
		}

		web.Success(w, http.StatusOK, users.ToUserResponse(u))
	}
}
