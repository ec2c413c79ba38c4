package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/KurtMante/clinic-BE/internal/model"
)

func (r *reminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	query := `
		INSERT INTO reminders (
			patient_id, appointment_id, service_name, preferred_date_time,
			message, is_read, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING reminder_id
	`
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()

	err := r.db.GetContext(ctx, &reminder.ID, query,
		reminder.PatientID,
		reminder.AppointmentID,
		reminder.ServiceName,
		reminder.PreferredDateTime,
		reminder.Message,
		reminder.IsRead,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

func (r *reminderRepository) Get(ctx context.Context, id int64) (*model.Reminder, error) {
	query := `
		SELECT reminder_id, patient_id, appointment_id, service_name,
			   preferred_date_time, message, is_read, created_at, updated_at
		FROM reminders
		WHERE reminder_id = $1
	`
	var reminder model.Reminder
	if err := r.db.GetContext(ctx, &reminder, query, id); err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return &reminder, nil
}

func (r *reminderRepository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*model.Reminder, error) {
	query := `
		SELECT reminder_id, patient_id, appointment_id, service_name,
			   preferred_date_time, message, is_read, created_at, updated_at
		FROM reminders
		WHERE appointment_id = $1
	`
	var reminder model.Reminder
	if err := r.db.GetContext(ctx, &reminder, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to get reminder by appointment id: %w", err)
	}
	return &reminder, nil
}

func (r *reminderRepository) List(ctx context.Context) ([]*model.Reminder, error) {
	query := `
		SELECT reminder_id, patient_id, appointment_id, service_name,
			   preferred_date_time, message, is_read, created_at, updated_at
		FROM reminders
		ORDER BY created_at DESC
	`
	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query); err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

func (r *reminderRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Reminder, error) {
	query := `
		SELECT reminder_id, patient_id, appointment_id, service_name,
			   preferred_date_time, message, is_read, created_at, updated_at
		FROM reminders
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list reminders for patient: %w", err)
	}
	return reminders, nil
}

func (r *reminderRepository) ListUnreadByPatient(ctx context.Context, patientID int64) ([]*model.Reminder, error) {
	query := `
		SELECT reminder_id, patient_id, appointment_id, service_name,
			   preferred_date_time, message, is_read, created_at, updated_at
		FROM reminders
		WHERE patient_id = $1
		AND is_read = FALSE
		ORDER BY created_at DESC
	`
	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list unread reminders: %w", err)
	}
	return reminders, nil
}

func (r *reminderRepository) MarkRead(ctx context.Context, id int64) error {
	query := `
		UPDATE reminders
		SET is_read = TRUE, updated_at = $1
		WHERE reminder_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reminder not found")
	}

	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM reminders
		WHERE reminder_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reminder not found")
	}

	return nil
}
