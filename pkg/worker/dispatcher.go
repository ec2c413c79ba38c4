package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KurtMante/clinic-BE/internal/email"
	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/repository"
	"github.com/KurtMante/clinic-BE/internal/sms"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	"github.com/KurtMante/clinic-BE/pkg/metrics"
)

type DispatcherConfig struct {
	BatchSize    int
	PollInterval time.Duration
	MaxRetries   int
}

// Dispatcher drains the notification queue and delivers by channel. It is
// the only component that talks to the email/SMS gateways; API callers only
// ever see the queued row.
type Dispatcher struct {
	repo     repository.NotificationRepository
	emailSvc email.Service
	smsSvc   sms.Service
	config   DispatcherConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewDispatcher(
	repo repository.NotificationRepository,
	emailSvc email.Service,
	smsSvc sms.Service,
	config DispatcherConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Dispatcher {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}

	return &Dispatcher{
		repo:     repo,
		emailSvc: emailSvc,
		smsSvc:   smsSvc,
		config:   config,
		logger:   logger,
		metrics:  metrics,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	d.logger.Info("Starting notification dispatcher")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Shutting down notification dispatcher")
			return
		case <-ticker.C:
			if err := d.processBatch(ctx); err != nil {
				d.logger.Error(err, "Failed to process notification batch")
			}
		}
	}
}

func (d *Dispatcher) processBatch(ctx context.Context) error {
	timer := prometheus.NewTimer(d.metrics.DispatchLatency)
	defer timer.ObserveDuration()

	notifications, err := d.repo.GetPendingWithLock(ctx, d.config.BatchSize)
	if err != nil {
		d.metrics.DatabaseOperations.WithLabelValues("get_pending_notifications", "error").Inc()
		return fmt.Errorf("failed to get pending notifications: %w", err)
	}
	d.metrics.DatabaseOperations.WithLabelValues("get_pending_notifications", "success").Inc()

	for _, n := range notifications {
		if err := d.dispatch(ctx, n); err != nil {
			d.logger.Error(err, "Failed to dispatch notification",
				"notification_id", n.ID.String(),
				"channel", string(n.Channel))
		}
	}

	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, n *model.Notification) error {
	err := d.deliver(ctx, n)
	if err != nil {
		d.metrics.NotificationsFailed.WithLabelValues(string(n.Channel)).Inc()
		errStr := err.Error()
		status := model.NotificationStatusRetrying
		if n.RetryCount+1 >= d.config.MaxRetries {
			status = model.NotificationStatusFailed
		}
		if updateErr := d.repo.UpdateStatus(ctx, n.ID, status, &errStr); updateErr != nil {
			d.logger.Error(updateErr, "Failed to update notification status")
		}
		return err
	}

	d.metrics.NotificationsDispatched.WithLabelValues(string(n.Channel)).Inc()
	if err := d.repo.UpdateStatus(ctx, n.ID, model.NotificationStatusSent, nil); err != nil {
		d.logger.Error(err, "Failed to update notification status", "notification_id", n.ID.String())
		return err
	}
	return nil
}

// deliver makes a single gateway attempt. Retries happen across polls: a
// failed row goes back to RETRYING and is re-claimed until retry_count
// exhausts MaxRetries.
func (d *Dispatcher) deliver(ctx context.Context, n *model.Notification) error {
	switch n.Channel {
	case model.NotificationChannelEmail:
		return d.emailSvc.Send(ctx, n.Recipient, n.Subject, n.Body)
	case model.NotificationChannelSMS:
		return d.smsSvc.Send(ctx, n.Recipient, n.Body)
	default:
		return fmt.Errorf("unsupported channel: %s", n.Channel)
	}
}
