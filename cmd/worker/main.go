package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/KurtMante/clinic-BE/internal/config"
	"github.com/KurtMante/clinic-BE/internal/email"
	"github.com/KurtMante/clinic-BE/internal/repository/postgres"
	"github.com/KurtMante/clinic-BE/internal/sms"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	"github.com/KurtMante/clinic-BE/pkg/metrics"
	"github.com/KurtMante/clinic-BE/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("clinic_worker")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	notificationRepo := postgres.NewNotificationRepository(db)

	emailSvc := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})
	smsSvc := sms.NewTelesignService(sms.Config{
		CustomerID:  cfg.SMS.CustomerID,
		APIKey:      cfg.SMS.APIKey,
		SenderID:    cfg.SMS.SenderID,
		MessageType: cfg.SMS.MessageType,
	})

	dispatcher := worker.NewDispatcher(
		notificationRepo,
		emailSvc,
		smsSvc,
		worker.DispatcherConfig{
			BatchSize:    cfg.Worker.BatchSize,
			PollInterval: cfg.Worker.PollInterval,
			MaxRetries:   cfg.Worker.MaxRetries,
		},
		appLogger,
		appMetrics,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go dispatcher.Start(ctx)
	log.Info().Msg("notification dispatcher started")

	// Expose dispatcher metrics alongside a trivial liveness probe.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsSrv := &http.Server{Addr: ":9091", Handler: mux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")

	cancel()
	if err := metricsSrv.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close metrics server")
	}

	log.Info().Msg("worker exited properly")
}
