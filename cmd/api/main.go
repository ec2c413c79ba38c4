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

	"github.com/KurtMante/clinic-BE/internal/config"
	acceptedHandler "github.com/KurtMante/clinic-BE/internal/handler/accepted"
	appointmentHandler "github.com/KurtMante/clinic-BE/internal/handler/appointment"
	healthHandler "github.com/KurtMante/clinic-BE/internal/handler/health"
	reminderHandler "github.com/KurtMante/clinic-BE/internal/handler/reminder"
	rescheduleHandler "github.com/KurtMante/clinic-BE/internal/handler/reschedule"
	scheduleHandler "github.com/KurtMante/clinic-BE/internal/handler/schedule"
	"github.com/KurtMante/clinic-BE/internal/middleware"
	"github.com/KurtMante/clinic-BE/internal/repository/postgres"
	"github.com/KurtMante/clinic-BE/internal/router"
	acceptedService "github.com/KurtMante/clinic-BE/internal/service/accepted"
	appointmentService "github.com/KurtMante/clinic-BE/internal/service/appointment"
	notificationService "github.com/KurtMante/clinic-BE/internal/service/notification"
	reminderService "github.com/KurtMante/clinic-BE/internal/service/reminder"
	rescheduleService "github.com/KurtMante/clinic-BE/internal/service/reschedule"
	scheduleService "github.com/KurtMante/clinic-BE/internal/service/schedule"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	redisBroker "github.com/KurtMante/clinic-BE/pkg/messaging/redis"
	"github.com/KurtMante/clinic-BE/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("clinic")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)
	acceptedRepo := postgres.NewAcceptedAppointmentRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	rescheduleRepo := postgres.NewRescheduleRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	serviceRepo := postgres.NewMedicalServiceRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Message broker for in-app notification fan-out
	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	// Services
	notifier := notificationService.NewService(notificationRepo, broker, appLogger)
	scheduleSvc := scheduleService.NewService(scheduleRepo, appLogger, appMetrics)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo,
		patientRepo,
		serviceRepo,
		scheduleSvc,
		notifier,
		appLogger,
		appMetrics,
	)
	reminderSvc := reminderService.NewService(
		reminderRepo,
		appointmentRepo,
		serviceRepo,
		patientRepo,
		appLogger,
	)
	acceptedSvc := acceptedService.NewService(
		acceptedRepo,
		appointmentRepo,
		patientRepo,
		reminderSvc,
		notifier,
		appLogger,
		appMetrics,
	)
	rescheduleSvc := rescheduleService.NewService(rescheduleRepo, appointmentRepo, patientRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{Secret: cfg.Auth.Secret})

	r := router.NewRouter(
		authMiddleware,
		healthHandler.NewHandler(db),
		appointmentHandler.NewHandler(appointmentSvc),
		acceptedHandler.NewHandler(acceptedSvc),
		scheduleHandler.NewHandler(scheduleSvc),
		reminderHandler.NewHandler(reminderSvc),
		rescheduleHandler.NewHandler(rescheduleSvc),
		router.Config{
			RateLimit:  20,
			RateBurst:  40,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	if err := broker.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close broker")
	}

	log.Info().Msg("server exited properly")
}
