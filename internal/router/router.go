package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "adoptme-api/docs"
	mem "adoptme-api/internal/adapters/storage/memory"
	pg "adoptme-api/internal/adapters/storage/postgres"
	"adoptme-api/internal/domain/adoptions"
	"adoptme-api/internal/domain/mocking"
	"adoptme-api/internal/domain/pets"
	"adoptme-api/internal/domain/sessions"
	"adoptme-api/internal/domain/users"
	"adoptme-api/internal/middleware"
	"adoptme-api/internal/platform/logger"
	"adoptme-api/internal/platform/web"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger

	// Prod oculta el detalle de los 500 en las respuestas.
	Prod bool
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.RequestLogger(log))
	r.Use(web.CaptureBody)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	var (
		userRepo  users.Repository
		petRepo   pets.Repository
		adoptRepo adoptions.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		adoptRepo = pg.NewAdoptionsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		adoptRepo = mem.NewAdoptionRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)
	adoptionsSvc := adoptions.NewService(adoptRepo, userRepo, petRepo, log)
	sessionsSvc := sessions.NewService(userRepo)

	gen, err := mocking.NewGenerator()
	if err != nil {
		return nil, err
	}

	rp := web.NewResponder(log, opts.Prod)

	r.Route("/api", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc, rp)
		pets.RegisterRoutes(api, petsSvc, rp)
		adoptions.RegisterRoutes(api, adoptionsSvc, rp)
		sessions.RegisterRoutes(api, sessionsSvc, rp)
		mocking.RegisterRoutes(api, gen, usersSvc, petsSvc, rp)

		api.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL("/api/docs/doc.json"),
		))
	})

	return r, nil
}
