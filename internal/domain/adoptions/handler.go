package adoptions

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/web"
)

func RegisterRoutes(r chi.Router, svc *Service, rp *web.Responder) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Get("/", listAdoptionsHandler(svc, rp))
		ar.Get("/{aid}", getAdoptionHandler(svc, rp))
		// contrato original por params
		ar.Post("/{uid}/{pid}", createAdoptionHandler(svc, rp))
		// shim por body: {uid|userId, pid|petId}
		ar.Post("/", createAdoptionBodyHandler(svc, rp))
	})
}

type adoptionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PetID     string    `json:"pet_id"`
	CreatedAt time.Time `json:"created_at"`
}

// listAdoptionsHandler godoc
// @Summary  Listar adopciones
// @Tags     Adoptions
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /adoptions [get]
func listAdoptionsHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			rp.Fail(w, r, err)
			return
		}

		out := make([]adoptionResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdoptionResponse(a))
		}
		web.Success(w, http.StatusOK, out)
	}
}

// getAdoptionHandler godoc
// @Summary  Obtener adopción por ID
// @Tags     Adoptions
// @Produce  json
// @Param    aid path string true "Adoption ID"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /adoptions/{aid} [get]
func getAdoptionHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "aid"))
		if err != nil {
			rp.Fail(w, r, err)
			return
		}
		web.Success(w, http.StatusOK, toAdoptionResponse(a))
	}
}

// createAdoptionHandler godoc
// @Summary  Crear adopción (user adopta pet)
// @Tags     Adoptions
// @Produce  json
// @Param    uid path string true "User ID"
// @Param    pid path string true "Pet ID"
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Router   /adoptions/{uid}/{pid} [post]
func createAdoptionHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Create(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "pid"))
		if err != nil {
			rp.Fail(w, r, err)
			return
		}
		web.Success(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

// createAdoptionBody acepta ambos nombres de campo; se normaliza a un id
// canónico ANTES de validar (un solo punto, sin branching regado).
type createAdoptionBody struct {
	UID    string `json:"uid"`
	UserID string `json:"userId"`
	PID    string `json:"pid"`
	PetID  string `json:"petId"`
}

func (b createAdoptionBody) canonical() (userID, petID string) {
	userID = strings.TrimSpace(b.UID)
	if userID == "" {
		userID = strings.TrimSpace(b.UserID)
	}
	petID = strings.TrimSpace(b.PID)
	if petID == "" {
		petID = strings.TrimSpace(b.PetID)
	}
	return userID, petID
}

// createAdoptionBodyHandler godoc
// @Summary  Crear adopción (body uid/pid o userId/petId)
// @Tags     Adoptions
// @Accept   json
// @Produce  json
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Router   /adoptions [post]
func createAdoptionBodyHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createAdoptionBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			rp.Fail(w, r, apperr.InvalidArgument("invalid json body"))
			return
		}

		userID, petID := body.canonical()
		if userID == "" || petID == "" {
			rp.Fail(w, r, apperr.InvalidArgument("missing uid/pid (or userId/petId) in body"))
			return
		}

		a, err := svc.Create(r.Context(), userID, petID)
		if err != nil {
			rp.Fail(w, r, err)
			return
		}
		web.Success(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		PetID:     a.PetID,
		CreatedAt: a.CreatedAt,
	}
}
