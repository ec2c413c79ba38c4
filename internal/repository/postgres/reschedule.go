package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/KurtMante/clinic-BE/internal/model"
)

func (r *rescheduleRepository) Create(ctx context.Context, reschedule *model.Reschedule) error {
	query := `
		INSERT INTO reschedules (
			appointment_id, patient_id, service_id, notes, confirmation,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING reschedule_id
	`
	reschedule.CreatedAt = time.Now()
	reschedule.UpdatedAt = time.Now()

	err := r.db.GetContext(ctx, &reschedule.ID, query,
		reschedule.AppointmentID,
		reschedule.PatientID,
		reschedule.ServiceID,
		reschedule.Notes,
		reschedule.Confirmation,
		reschedule.CreatedAt,
		reschedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reschedule: %w", err)
	}
	return nil
}

func (r *rescheduleRepository) Get(ctx context.Context, id int64) (*model.Reschedule, error) {
	query := `
		SELECT reschedule_id, appointment_id, patient_id, service_id, notes,
			   confirmation, created_at, updated_at
		FROM reschedules
		WHERE reschedule_id = $1
	`
	var reschedule model.Reschedule
	if err := r.db.GetContext(ctx, &reschedule, query, id); err != nil {
		return nil, fmt.Errorf("failed to get reschedule: %w", err)
	}
	return &reschedule, nil
}

func (r *rescheduleRepository) List(ctx context.Context) ([]*model.Reschedule, error) {
	query := `
		SELECT reschedule_id, appointment_id, patient_id, service_id, notes,
			   confirmation, created_at, updated_at
		FROM reschedules
		ORDER BY created_at DESC
	`
	var reschedules []*model.Reschedule
	if err := r.db.SelectContext(ctx, &reschedules, query); err != nil {
		return nil, fmt.Errorf("failed to list reschedules: %w", err)
	}
	return reschedules, nil
}

func (r *rescheduleRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Reschedule, error) {
	query := `
		SELECT reschedule_id, appointment_id, patient_id, service_id, notes,
			   confirmation, created_at, updated_at
		FROM reschedules
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var reschedules []*model.Reschedule
	if err := r.db.SelectContext(ctx, &reschedules, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list reschedules for patient: %w", err)
	}
	return reschedules, nil
}

func (r *rescheduleRepository) Update(ctx context.Context, reschedule *model.Reschedule) error {
	query := `
		UPDATE reschedules
		SET notes = $1, confirmation = $2, updated_at = $3
		WHERE reschedule_id = $4
	`
	reschedule.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		reschedule.Notes,
		reschedule.Confirmation,
		reschedule.UpdatedAt,
		reschedule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reschedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reschedule not found")
	}

	return nil
}

func (r *rescheduleRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM reschedules
		WHERE reschedule_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reschedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reschedule not found")
	}

	return nil
}
