package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/KurtMante/clinic-BE/internal/model"
)

func (r *acceptedAppointmentRepository) Create(ctx context.Context, accepted *model.AcceptedAppointment) error {
	query := `
		INSERT INTO accepted_appointments (
			appointment_id, patient_id, service_id, preferred_date_time,
			symptom, is_attended, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING accepted_appointment_id
	`
	accepted.CreatedAt = time.Now()
	accepted.UpdatedAt = time.Now()

	err := r.db.GetContext(ctx, &accepted.ID, query,
		accepted.AppointmentID,
		accepted.PatientID,
		accepted.ServiceID,
		accepted.PreferredDateTime,
		accepted.Symptom,
		accepted.IsAttended,
		accepted.CreatedAt,
		accepted.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create accepted appointment: %w", err)
	}
	return nil
}

func (r *acceptedAppointmentRepository) Get(ctx context.Context, id int64) (*model.AcceptedAppointment, error) {
	query := `
		SELECT accepted_appointment_id, appointment_id, patient_id, service_id,
			   preferred_date_time, symptom, is_attended, created_at, updated_at
		FROM accepted_appointments
		WHERE accepted_appointment_id = $1
	`
	var accepted model.AcceptedAppointment
	if err := r.db.GetContext(ctx, &accepted, query, id); err != nil {
		return nil, fmt.Errorf("failed to get accepted appointment: %w", err)
	}
	return &accepted, nil
}

func (r *acceptedAppointmentRepository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*model.AcceptedAppointment, error) {
	query := `
		SELECT accepted_appointment_id, appointment_id, patient_id, service_id,
			   preferred_date_time, symptom, is_attended, created_at, updated_at
		FROM accepted_appointments
		WHERE appointment_id = $1
	`
	var accepted model.AcceptedAppointment
	if err := r.db.GetContext(ctx, &accepted, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to get accepted appointment by appointment id: %w", err)
	}
	return &accepted, nil
}

func (r *acceptedAppointmentRepository) List(ctx context.Context) ([]*model.AcceptedAppointment, error) {
	query := `
		SELECT accepted_appointment_id, appointment_id, patient_id, service_id,
			   preferred_date_time, symptom, is_attended, created_at, updated_at
		FROM accepted_appointments
		ORDER BY preferred_date_time ASC
	`
	var accepted []*model.AcceptedAppointment
	if err := r.db.SelectContext(ctx, &accepted, query); err != nil {
		return nil, fmt.Errorf("failed to list accepted appointments: %w", err)
	}
	return accepted, nil
}

func (r *acceptedAppointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.AcceptedAppointment, error) {
	query := `
		SELECT accepted_appointment_id, appointment_id, patient_id, service_id,
			   preferred_date_time, symptom, is_attended, created_at, updated_at
		FROM accepted_appointments
		WHERE patient_id = $1
		ORDER BY preferred_date_time ASC
	`
	var accepted []*model.AcceptedAppointment
	if err := r.db.SelectContext(ctx, &accepted, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list accepted appointments for patient: %w", err)
	}
	return accepted, nil
}

func (r *acceptedAppointmentRepository) ListByAttendance(ctx context.Context, attended bool) ([]*model.AcceptedAppointment, error) {
	query := `
		SELECT accepted_appointment_id, appointment_id, patient_id, service_id,
			   preferred_date_time, symptom, is_attended, created_at, updated_at
		FROM accepted_appointments
		WHERE is_attended = $1
		ORDER BY preferred_date_time ASC
	`
	var accepted []*model.AcceptedAppointment
	if err := r.db.SelectContext(ctx, &accepted, query, attended); err != nil {
		return nil, fmt.Errorf("failed to list accepted appointments by attendance: %w", err)
	}
	return accepted, nil
}

func (r *acceptedAppointmentRepository) UpdateAttendance(ctx context.Context, id int64, attended bool) error {
	query := `
		UPDATE accepted_appointments
		SET is_attended = $1, updated_at = $2
		WHERE accepted_appointment_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, attended, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("accepted appointment not found")
	}

	return nil
}

func (r *acceptedAppointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM accepted_appointments
		WHERE accepted_appointment_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete accepted appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("accepted appointment not found")
	}

	return nil
}
