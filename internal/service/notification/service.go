package notification

import (
	"context"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/repository"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	"github.com/KurtMante/clinic-BE/pkg/messaging"
)

const inAppChannel = "notifications"

// Notifier is the capability the lifecycle services depend on. Delivery is
// fire-and-forget: failures are logged, never raised to the caller.
type Notifier interface {
	Notify(ctx context.Context, patient *model.Patient, subject, body string)
}

type service struct {
	repo   repository.NotificationRepository
	broker messaging.Broker
	logger *logger.Logger
}

func NewService(repo repository.NotificationRepository, broker messaging.Broker, logger *logger.Logger) Notifier {
	return &service{
		repo:   repo,
		broker: broker,
		logger: logger,
	}
}

// Notify queues one outbound message per reachable channel. The background
// dispatcher owns delivery; this call only records intent, so the triggering
// operation is never blocked or failed by a downstream outage.
func (s *service) Notify(ctx context.Context, patient *model.Patient, subject, body string) {
	if patient == nil {
		return
	}

	if patient.Email != "" {
		s.enqueue(ctx, &model.Notification{
			PatientID: patient.ID,
			Channel:   model.NotificationChannelEmail,
			Recipient: patient.Email,
			Subject:   subject,
			Body:      body,
		})
	}

	if patient.Phone != nil && *patient.Phone != "" {
		s.enqueue(ctx, &model.Notification{
			PatientID: patient.ID,
			Channel:   model.NotificationChannelSMS,
			Recipient: *patient.Phone,
			Subject:   subject,
			Body:      body,
		})
	}

	if s.broker != nil {
		event := messaging.Message{
			Type: "patient_notification",
			Payload: map[string]interface{}{
				"patient_id": patient.ID,
				"subject":    subject,
				"body":       body,
			},
		}
		if err := s.broker.Publish(ctx, inAppChannel, event); err != nil {
			s.logger.Error(err, "failed to publish in-app notification", "patient_id", patient.ID)
		}
	}
}

func (s *service) enqueue(ctx context.Context, n *model.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error(err, "failed to queue notification",
			"patient_id", n.PatientID,
			"channel", string(n.Channel))
	}
}
