package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KurtMante/clinic-BE/internal/model"
)

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if notification == nil {
		return fmt.Errorf("notification cannot be nil")
	}

	query := `
		INSERT INTO notifications (
			id, patient_id, channel, recipient, subject, body, status,
			retry_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	notification.ID = uuid.New()
	notification.Status = model.NotificationStatusPending
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.PatientID,
		notification.Channel,
		notification.Recipient,
		notification.Subject,
		notification.Body,
		notification.Status,
		notification.RetryCount,
		notification.CreatedAt,
		notification.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetPendingWithLock claims a batch of undelivered notifications. SKIP LOCKED
// keeps concurrent dispatcher instances from draining the same rows.
func (r *notificationRepository) GetPendingWithLock(ctx context.Context, limit int) ([]*model.Notification, error) {
	query := `
		SELECT id, patient_id, channel, recipient, subject, body, status,
			   retry_count, last_error, created_at, sent_at, updated_at
		FROM notifications
		WHERE status IN ($1, $2)
		ORDER BY created_at ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	`
	var notifications []*model.Notification
	err := r.db.SelectContext(ctx, &notifications, query,
		model.NotificationStatusPending,
		model.NotificationStatusRetrying,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, lastError *string) error {
	query := `
		UPDATE notifications
		SET status = $1,
			last_error = $2,
			retry_count = CASE WHEN $1 IN ('RETRYING', 'FAILED') THEN retry_count + 1 ELSE retry_count END,
			sent_at = CASE WHEN $1 = 'SENT' THEN NOW() ELSE sent_at END,
			updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (r *notificationRepository) DeleteSentBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM notifications
		WHERE status = $1
		AND sent_at < $2
	`
	result, err := r.db.ExecContext(ctx, query, model.NotificationStatusSent, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sent notifications: %w", err)
	}
	return result.RowsAffected()
}
