package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendly/booking-api/internal/config"
	appointmentHandler "github.com/agendly/booking-api/internal/handler/appointment"
	clientHandler "github.com/agendly/booking-api/internal/handler/client"
	healthHandler "github.com/agendly/booking-api/internal/handler/health"
	reportHandler "github.com/agendly/booking-api/internal/handler/report"
	serviceHandler "github.com/agendly/booking-api/internal/handler/service"
	"github.com/agendly/booking-api/internal/middleware"
	"github.com/agendly/booking-api/internal/repository/postgres"
	"github.com/agendly/booking-api/internal/router"
	"github.com/agendly/booking-api/internal/service/catalog"
	"github.com/agendly/booking-api/internal/service/report"
	"github.com/agendly/booking-api/internal/service/scheduling"
	"github.com/agendly/booking-api/pkg/auth"
	"github.com/agendly/booking-api/pkg/logger"
	"github.com/agendly/booking-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := validator.RegisterBookingFormats(); err != nil {
		log.Fatal().Err(err).Msg("failed to register request validators")
	}

	clientRepo := postgres.NewClientRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	clientSvc := catalog.NewClientService(clientRepo)
	serviceSvc := catalog.NewServiceCatalog(serviceRepo)
	schedulingSvc := scheduling.NewService(appointmentRepo, clientRepo, serviceRepo, outboxRepo, log.Logger)
	reportSvc := report.NewService(appointmentRepo, time.Duration(cfg.Reports.CacheTTLSeconds)*time.Second)

	authMiddleware := middleware.NewAuthMiddleware(auth.NewTokenVerifier(cfg.JWT.Secret))

	r := router.NewRouter(
		authMiddleware,
		healthHandler.NewHandler(db),
		clientHandler.NewHandler(clientSvc),
		serviceHandler.NewHandler(serviceSvc),
		appointmentHandler.NewHandler(schedulingSvc),
		reportHandler.NewHandler(reportSvc),
		router.RouterConfig{
			RateLimit:     100,
			RateBurst:     200,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "booking_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
