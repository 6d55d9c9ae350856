package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"soycraft-insights/internal/adapters/auth/gotrue"
	"soycraft-insights/internal/adapters/auth/jwtlocal"
	"soycraft-insights/internal/adapters/llm/openai"
	pg "soycraft-insights/internal/adapters/storage/postgres"
	"soycraft-insights/internal/platform/config"
	"soycraft-insights/internal/ports/auth"
	"soycraft-insights/internal/router"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @title Soycraft Insights API
// @version 0.1
// @description Registro de cuidado de mascotas + evaluación de riesgo digestivo e insights.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		if err := pg.Migrate(db); err != nil {
			logger.Fatal("migrate database", zap.Error(err))
		}
		logger.Info("using postgres storage")
	} else {
		logger.Info("no DB_DSN set, using in-memory storage")
	}

	verifier := pickVerifier(cfg, logger)

	chat, err := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("init chat client", zap.Error(err))
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Chat:         chat,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second, // las llamadas al modelo pueden tardar
	}

	logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("model", cfg.OpenAIModel))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// pickVerifier elige el verificador de tokens: JWT local si hay secret,
// remoto si hay base URL + api key, nil (modo debug-header) solo en DevMode.
func pickVerifier(cfg *config.Config, logger *zap.Logger) auth.AuthVerifier {
	if cfg.AuthJWTSecret != "" {
		v, err := jwtlocal.NewVerifier(cfg.AuthJWTSecret)
		if err != nil {
			logger.Fatal("init jwt verifier", zap.Error(err))
		}
		logger.Info("auth: local jwt verification")
		return v
	}
	if cfg.AuthBaseURL != "" {
		client := gotrue.NewClient(gotrue.Config{
			BaseURL: cfg.AuthBaseURL,
			APIKey:  cfg.AuthAPIKey,
		})
		logger.Info("auth: remote verification", zap.String("base_url", cfg.AuthBaseURL))
		return gotrue.NewVerifier(client)
	}

	logger.Warn("auth: DEV MODE, trusting X-Debug-User-ID header")
	return nil
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return logger
}
