package mocking

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"adoptme-api/internal/domain/pets"
	"adoptme-api/internal/domain/users"
	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/web"
)

func RegisterRoutes(r chi.Router, gen *Generator, usersSvc *users.Service, petsSvc *pets.Service, rp *web.Responder) {
	r.Route("/mocks", func(mr chi.Router) {
		// GET era el contrato original; POST quedó documentado después.
		// Mismos handlers para ambos.
		mr.Get("/mockingusers", mockingUsersHandler(gen))
		mr.Post("/mockingusers", mockingUsersHandler(gen))
		mr.Get("/mockingpets", mockingPetsHandler(gen))
		mr.Post("/mockingpets", mockingPetsHandler(gen))
		mr.Post("/generateData", generateDataHandler(gen, usersSvc, petsSvc, rp))
	})
}

func countParam(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

type countedResponse struct {
	Status  string `json:"status"`
	Payload any    `json:"payload"`
	Count   int    `json:"count"`
}

// mockingUsersHandler godoc
// @Summary  Generar usuarios falsos (sin persistir)
// @Tags     Mocks
// @Produce  json
// @Param    count query int false "cantidad (default 50)"
// @Success  200 {object} map[string]any
// @Router   /mocks/mockingusers [post]
func mockingUsersHandler(gen *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		generated := gen.Users(countParam(r, DefaultUserCount))

		out := make([]any, 0, len(generated))
		for _, u := range generated {
			out = append(out, users.ToUserResponse(u))
		}
		web.JSON(w, http.StatusOK, countedResponse{
			Status:  web.StatusSuccess,
			Payload: out,
			Count:   len(out),
		})
	}
}

type mockPetResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	BirthDate *time.Time `json:"birth_date"`
	Adopted   bool       `json:"adopted"`
}

// mockingPetsHandler godoc
// @Summary  Generar mascotas falsas (sin persistir)
// @Tags     Mocks
// @Produce  json
// @Param    count query int false "cantidad (default 20)"
// @Success  200 {object} map[string]any
// @Router   /mocks/mockingpets [post]
func mockingPetsHandler(gen *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		generated := gen.Pets(countParam(r, DefaultPetCount))

		out := make([]mockPetResponse, 0, len(generated))
		for _, p := range generated {
			out = append(out, mockPetResponse{
				ID:        p.ID,
				Name:      p.Name,
				Species:   string(p.Species),
				BirthDate: p.BirthDate,
				Adopted:   p.Adopted,
			})
		}
		web.JSON(w, http.StatusOK, countedResponse{
			Status:  web.StatusSuccess,
			Payload: out,
			Count:   len(out),
		})
	}
}

type generateDataRequest struct {
	Users int `json:"users"`
	Pets  int `json:"pets"`
}

type generateDataResponse struct {
	Status   string         `json:"status"`
	Inserted map[string]int `json:"inserted"`
}

// generateDataHandler godoc
// @Summary  Generar e insertar datos falsos
// @Tags     Mocks
// @Accept   json
// @Produce  json
// @Success  200 {object} map[string]any
// @Failure  500 {object} map[string]any
// @Router   /mocks/generateData [post]
func generateDataHandler(gen *Generator, usersSvc *users.Service, petsSvc *pets.Service, rp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateDataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rp.Fail(w, r, apperr.InvalidArgument("invalid json body"))
			return
		}

		insertedUsers := 0
		if req.Users > 0 {
			n, err := usersSvc.InsertMany(r.Context(), gen.Users(req.Users))
			if err != nil {
				rp.Fail(w, r, apperr.Internal("insert mock users", err))
				return
			}
			insertedUsers = n
		}

		insertedPets := 0
		if req.Pets > 0 {
			n, err := petsSvc.InsertMany(r.Context(), gen.Pets(req.Pets))
			if err != nil {
				rp.Fail(w, r, apperr.Internal("insert mock pets", err))
				return
			}
			insertedPets = n
		}

		web.JSON(w, http.StatusOK, generateDataResponse{
			Status: web.StatusSuccess,
			Inserted: map[string]int{
				"users": insertedUsers,
				"pets":  insertedPets,
			},
		})
	}
}
