package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/vetlink/vetlink-api/internal/config"
	"github.com/vetlink/vetlink-api/internal/domain/account"
	"github.com/vetlink/vetlink-api/internal/domain/admin"
	"github.com/vetlink/vetlink-api/internal/domain/appointment"
	"github.com/vetlink/vetlink-api/internal/domain/auth"
	"github.com/vetlink/vetlink-api/internal/domain/moderation"
	"github.com/vetlink/vetlink-api/internal/domain/notification"
	"github.com/vetlink/vetlink-api/internal/middleware"
	"github.com/vetlink/vetlink-api/internal/pkg/database"
	"github.com/vetlink/vetlink-api/internal/pkg/jwt"
	"github.com/vetlink/vetlink-api/internal/pkg/logger"
	"github.com/vetlink/vetlink-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting VetLink API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	adminJWTService := admin.NewJWTService(cfg.JWTSecret, cfg.AdminTokenTTL)

	// ---------- Repositories ----------
	accountRepo := account.NewRepository(db)
	appointmentRepo := appointment.NewRepository(db)
	reportRepo := moderation.NewReportRepository(db)
	unbanRequestRepo := moderation.NewUnbanRequestRepository(db)
	adminRepo := admin.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := notification.NewHub(redisClient)
	go hub.Run()
	defer hub.Stop()

	// ---------- Services ----------
	authService := auth.NewService(accountRepo, jwtService)
	appointmentService := appointment.NewService(appointmentRepo, accountRepo)
	adminService := admin.NewService(adminRepo)
	banNotifier := notification.NewBanNotifier(hub)
	moderationService := moderation.NewService(reportRepo, unbanRequestRepo, accountRepo, appointmentRepo, banNotifier)

	// ---------- Ban sweeper ----------
	sweeper := moderation.NewSweeper(accountRepo, cfg.BanSweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	appointmentHandler := appointment.NewHandler(appointmentService)
	moderationHandler := moderation.NewHandler(moderationService)
	adminModerationHandler := moderation.NewAdminHandler(moderationService, adminService)
	notificationHandler := notification.NewHandler(hub, cfg.AllowedOrigins)
	adminHandler := admin.NewHandler(adminService, adminJWTService)

	authMiddleware := middleware.Auth(jwtService)
	adminAuthMiddleware := admin.AuthMiddleware(adminJWTService, adminService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(notificationHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", auth.Routes(authHandler, authMiddleware))
		r.Mount("/appointments", appointment.Routes(appointmentHandler, authMiddleware))
		r.Mount("/moderation", moderation.Routes(moderationHandler, authMiddleware))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/", adminHandler.Routes())
		r.Mount("/moderation", moderation.AdminRoutes(adminModerationHandler, adminAuthMiddleware, admin.RequirePermission))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
