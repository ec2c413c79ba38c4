package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/KurtMante/clinic-BE/internal/model"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
)

// uniqueViolation is the postgres error code raised by the slot-bucket
// constraint. Two requests racing past the read-time conflict check land
// here; the violation is the canonical scheduling conflict.
const uniqueViolation = "23505"

func isSlotTaken(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			patient_id, service_id, preferred_date_time, symptom, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING appointment_id
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	err := r.db.GetContext(ctx, &appointment.ID, query,
		appointment.PatientID,
		appointment.ServiceID,
		appointment.PreferredDateTime,
		appointment.Symptom,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		if isSlotTaken(err) {
			return apperrors.SchedulingConflictf(
				"This time slot is already booked. There is an appointment at %s. Each appointment requires a 1-hour time slot. Please choose a different time.",
				appointment.PreferredDateTime.Format(model.TimeLayout),
			)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, service_id, preferred_date_time,
			   symptom, status, created_at, updated_at
		FROM appointments
		WHERE appointment_id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, service_id, preferred_date_time,
			   symptom, status, created_at, updated_at
		FROM appointments
		ORDER BY preferred_date_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, service_id, preferred_date_time,
			   symptom, status, created_at, updated_at
		FROM appointments
		WHERE patient_id = $1
		ORDER BY preferred_date_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list appointments for patient: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, service_id = $2, preferred_date_time = $3,
			symptom = $4, status = $5, updated_at = $6
		WHERE appointment_id = $7
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.PatientID,
		appointment.ServiceID,
		appointment.PreferredDateTime,
		appointment.Symptom,
		appointment.Status,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		if isSlotTaken(err) {
			return apperrors.SchedulingConflictf(
				"This time slot is already booked. There is an appointment at %s. Each appointment requires a 1-hour time slot. Please choose a different time.",
				appointment.PreferredDateTime.Format(model.TimeLayout),
			)
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM appointments
		WHERE appointment_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}

func (r *appointmentRepository) FindConflictsGlobal(ctx context.Context, windowStart, windowEnd time.Time, excludeID *int64) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, service_id, preferred_date_time,
			   symptom, status, created_at, updated_at
		FROM appointments
		WHERE preferred_date_time > $1
		AND preferred_date_time < $2
	`
	args := []interface{}{windowStart, windowEnd}

	if excludeID != nil {
		query += " AND appointment_id != $3"
		args = append(args, *excludeID)
	}

	var conflicts []*model.Appointment
	if err := r.db.SelectContext(ctx, &conflicts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find conflicting appointments: %w", err)
	}
	return conflicts, nil
}

func (r *appointmentRepository) FindConflictsForPatient(ctx context.Context, patientID int64, windowStart, windowEnd time.Time, excludeID *int64) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, service_id, preferred_date_time,
			   symptom, status, created_at, updated_at
		FROM appointments
		WHERE patient_id = $1
		AND preferred_date_time > $2
		AND preferred_date_time < $3
	`
	args := []interface{}{patientID, windowStart, windowEnd}

	if excludeID != nil {
		query += " AND appointment_id != $4"
		args = append(args, *excludeID)
	}

	var conflicts []*model.Appointment
	if err := r.db.SelectContext(ctx, &conflicts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find patient conflicts: %w", err)
	}
	return conflicts, nil
}
