package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "shelter-feeding/internal/adapters/storage/memory"
	pg "shelter-feeding/internal/adapters/storage/postgres"
	"shelter-feeding/internal/domain/animals"
	"shelter-feeding/internal/domain/feeding"
	"shelter-feeding/internal/domain/foods"
	"shelter-feeding/internal/middleware"
	"shelter-feeding/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory (modo dev).
	DB *sql.DB

	// Opcional: logging de requests si viene logger.
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Logger != nil {
		r.Use(middleware.RequestLog(opts.Logger))
	}

	r.Use(middleware.StaffContext())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		animalRepo animals.Repository
		foodRepo   foods.Repository
		planRepo   feeding.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		foodRepo = pg.NewFoodsRepo(db)
		planRepo = pg.NewFeedingPlansRepo(db)
	} else {
		animalRepo = mem.NewAnimalRepo()
		foodRepo = mem.NewFoodRepo()
		planRepo = mem.NewFeedingPlanRepo()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo)
	foodsSvc := foods.NewService(foodRepo)
	feedingSvc := feeding.NewService(planRepo, animalsSvc, foodsSvc)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	foods.RegisterRoutes(r, foodsSvc)
	feeding.RegisterRoutes(r, feedingSvc)

	return r
}
