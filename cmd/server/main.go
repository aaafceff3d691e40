package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carelog/carelog-server-go/internal/config"
	"github.com/carelog/carelog-server-go/internal/database"
	"github.com/carelog/carelog-server-go/internal/handler"
	"github.com/carelog/carelog-server-go/internal/middleware"
	"github.com/carelog/carelog-server-go/internal/redis"
	"github.com/carelog/carelog-server-go/internal/repository"
	"github.com/carelog/carelog-server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	userRepo := repository.NewUserRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)
	patientRepo := repository.NewPatientRepository(db.DB)
	careLogRepo := repository.NewCareLogRepository(db.DB)
	noteRepo := repository.NewNoteRepository(db.DB)
	shareLinkRepo := repository.NewShareLinkRepository(redisClient)

	// The text-generation capability is resolved once here. Without a key the
	// analysis service always takes the heuristic path.
	var generator service.TextGenerator
	if cfg.AIEnabled() {
		generator = service.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Info().Str("model", cfg.OpenAIModel).Msg("ai analysis enabled")
	} else {
		log.Info().Msg("no OPENAI_API_KEY set, using basic analysis")
	}

	authService := service.NewAuthService(userRepo, sessionRepo)
	patientService := service.NewPatientService(patientRepo, careLogRepo, noteRepo, shareLinkRepo, userRepo)
	recordService := service.NewRecordService(careLogRepo, noteRepo)
	shareLinkService := service.NewShareLinkService(shareLinkRepo, patientRepo, cfg.ShareBaseURL)
	analysisService := service.NewAnalysisService(patientRepo, careLogRepo, generator)

	authMiddleware := middleware.NewAuthMiddleware(sessionRepo)
	credRateLimitMiddleware := middleware.NewCredentialRateLimitMiddleware(redisClient.Client)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	recordHandler := handler.NewRecordHandler(recordService)
	shareLinkHandler := handler.NewShareLinkHandler(shareLinkService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	ping := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
	r.Get("/api/ping", ping)
	r.Get("/health", ping)

	r.Group(func(r chi.Router) {
		r.Use(credRateLimitMiddleware.Handler)
		r.Post("/api/register", authHandler.Register)
		r.Post("/api/login", authHandler.Login)
	})

	// Logout takes an optional bearer token and always succeeds.
	r.Post("/api/logout", authHandler.Logout)

	r.Get("/share/{code}", handler.SharePage)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Handler)

		r.Get("/api/me", authHandler.Me)

		r.Get("/api/patients", patientHandler.List)
		r.Post("/api/patients", patientHandler.Create)
		r.Post("/api/patients/{id}/assign", patientHandler.Assign)
		r.Delete("/api/patients/{id}", patientHandler.Delete)
		r.Get("/api/doctors", patientHandler.Doctors)

		r.Get("/api/logs/{patientID}", recordHandler.ListLogs)
		r.Post("/api/logs/{patientID}", recordHandler.CreateLog)
		r.Get("/api/notes/{patientID}", recordHandler.ListNotes)
		r.Post("/api/notes/{patientID}", recordHandler.CreateNote)

		r.Post("/api/share/{patientID}", shareLinkHandler.Create)
		r.Get("/api/share/{patientID}", shareLinkHandler.Get)

		r.Get("/api/analysis/{patientID}", analysisHandler.Generate)
	})

	r.NotFound(handler.StaticFileServer(cfg.StaticDir).ServeHTTP)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
