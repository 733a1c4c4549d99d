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

	"github.com/tourhub/tourhub-api/internal/config"
	"github.com/tourhub/tourhub-api/internal/domain/auth"
	"github.com/tourhub/tourhub-api/internal/domain/booking"
	"github.com/tourhub/tourhub-api/internal/domain/customer"
	"github.com/tourhub/tourhub-api/internal/domain/guide"
	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/middleware"
	"github.com/tourhub/tourhub-api/internal/pkg/database"
	"github.com/tourhub/tourhub-api/internal/pkg/jwt"
	"github.com/tourhub/tourhub-api/internal/pkg/logger"
	pkgresponse "github.com/tourhub/tourhub-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Development: cfg.IsDevelopment()})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting TourHub API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	tourRepo := tour.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	guideRepo := guide.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService)
	tourService := tour.NewService(tourRepo)
	customerService := customer.NewService(customerRepo, userRepo)
	guideService := guide.NewService(guideRepo, userRepo, tourRepo)
	bookingService := booking.NewService(bookingRepo, customerRepo, guideRepo, tourRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	tourHandler := tour.NewHandler(tourService)
	customerHandler := customer.NewHandler(customerService)
	guideHandler := guide.NewHandler(guideService)
	bookingHandler := booking.NewHandler(bookingService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/tours", tourHandler.Routes(authMiddleware))
		r.Mount("/customers", customerHandler.Routes(authMiddleware))
		r.Mount("/guides", guideHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
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
