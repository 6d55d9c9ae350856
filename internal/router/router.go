package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "soycraft-insights/internal/adapters/storage/memory"
	pg "soycraft-insights/internal/adapters/storage/postgres"
	"soycraft-insights/internal/domain/assessments"
	"soycraft-insights/internal/domain/insights"
	"soycraft-insights/internal/domain/logs"
	"soycraft-insights/internal/domain/pets"
	"soycraft-insights/internal/domain/rewards"
	"soycraft-insights/internal/domain/wellness"
	"soycraft-insights/internal/middleware"
	"soycraft-insights/internal/ports/auth"
	"soycraft-insights/internal/ports/llm"

	_ "soycraft-insights/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Cliente del modelo para el pipeline de insights.
	Chat llm.ChatCompleter

	Logger *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		petRepo     pets.Repository
		logsRepo    logs.Repository
		notesRepo   assessments.Repository
		rewardsRepo rewards.Repository
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
		petRepo = pg.NewPetsRepo(db)
		logsRepo = pg.NewLogsRepo(db)
		notesRepo = pg.NewNotesRepo(db)
		rewardsRepo = pg.NewRewardsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		logsRepo = mem.NewLogsRepo()
		notesRepo = mem.NewNotesRepo()
		rewardsRepo = mem.NewRewardsRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	rewardsSvc := rewards.NewService(rewardsRepo, logger)
	logsSvc := logs.NewService(logsRepo)
	notesSvc := assessments.NewService(notesRepo)
	insightsSvc := insights.NewService(petsSvc, logsSvc, notesSvc, opts.Chat, logger)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	logs.RegisterRoutes(r, logsSvc, petsSvc, rewardsSvc)
	rewards.RegisterRoutes(r, rewardsSvc)
	wellness.RegisterRoutes(r, logsSvc, petsSvc, notesSvc)
	assessments.RegisterRoutes(r, notesSvc, petsSvc)
	insights.RegisterRoutes(r, insightsSvc)

	return r
}
