package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/agendly/booking-api/internal/config"
	"github.com/agendly/booking-api/internal/repository/postgres"
	"github.com/agendly/booking-api/pkg/email"
	"github.com/agendly/booking-api/pkg/logger"
	"github.com/agendly/booking-api/pkg/messaging/redis"
	"github.com/agendly/booking-api/pkg/metrics"
	"github.com/agendly/booking-api/pkg/worker"
)

// workerEnv overrides the file-based worker settings per deployment.
type workerEnv struct {
	BatchSize    int           `envconfig:"BATCH_SIZE" default:"0"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"0"`
	HealthAddr   string        `envconfig:"HEALTH_ADDR" default:":8081"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var env workerEnv
	if err := envconfig.Process("worker", &env); err != nil {
		log.Fatal().Err(err).Msg("failed to read worker environment")
	}

	log.Logger = logger.New(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	batchSize := cfg.Worker.BatchSize
	if env.BatchSize > 0 {
		batchSize = env.BatchSize
	}
	pollInterval := time.Duration(cfg.Worker.PollIntervalSeconds) * time.Second
	if env.PollInterval > 0 {
		pollInterval = env.PollInterval
	}

	mailer := email.NewMailer(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		To:       cfg.SMTP.To,
	})

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		mailer,
		worker.OutboxProcessorConfig{
			BatchSize:    batchSize,
			PollInterval: pollInterval,
		},
		log.Logger,
		metrics.NewMetrics("booking_worker"),
	)

	startHealthCheck(env.HealthAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	processor.Start(ctx)
}

func startHealthCheck(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
}
