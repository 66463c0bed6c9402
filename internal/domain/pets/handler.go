package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adoptme-api/internal/platform/web"
)

func RegisterRoutes(r chi.Router, svc *Service, rp *web.Responder) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, rp))
		pr.Post("/", createPetHandler(svc, rp))
		pr.Get("/{pid}", getPetHandler(svc, rp))
	})
}

type createPetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
}

type petResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Adopted     bool       `json:"adopted"`
	OwnerUserID string     `json:"owner_user_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// listPetsHandler godoc
// @Summary  Listar mascotas
// @Tags     Pets
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /pets [get]
func listPetsHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			rp.Fail(w, r, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		web.Success(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary  Crear mascota
// @Tags     Pets
// @Accept   json
// @Produce  json
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Router   /pets [post]
func createPetHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rp.Fail(w, r, ErrInvalidInput)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				rp.Fail(w, r, ErrInvalidInput)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			BirthDate: bd,
		})
		if err != nil {
			rp.Fail(w, r, err)
			return
		}

		web.Success(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary  Obtener mascota por ID
// @Tags     Pets
// @Produce  json
// @Param    pid path string true "Pet ID"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /pets/{pid} [get]
func getPetHandler(svc *Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "pid"))
		if err != nil {
			rp.Fail(w, r, err)
			return
		}
		web.Success(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Species:     string(p.Species),
		BirthDate:   p.BirthDate,
		Adopted:     p.Adopted,
		OwnerUserID: p.OwnerUserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
