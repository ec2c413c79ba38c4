package accepted

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/repository"
	"github.com/KurtMante/clinic-BE/internal/service/notification"
	"github.com/KurtMante/clinic-BE/internal/service/reminder"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	"github.com/KurtMante/clinic-BE/pkg/metrics"
)

type Service struct {
	repo            repository.AcceptedAppointmentRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	reminderSvc     *reminder.Service
	notifier        notification.Notifier
	logger          *logger.Logger
	metrics         *metrics.Metrics
}

func NewService(
	repo repository.AcceptedAppointmentRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	reminderSvc *reminder.Service,
	notifier notification.Notifier,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		reminderSvc:     reminderSvc,
		notifier:        notifier,
		logger:          logger,
		metrics:         metrics,
	}
}

// AcceptAppointment moves a pending appointment to Accepted and records the
// canonical AcceptedAppointment row. The appointment row is kept; only its
// status changes. Reminder creation and the acceptance notification are
// best-effort and never roll back the acceptance.
func (s *Service) AcceptAppointment(ctx context.Context, appointmentID int64, req *model.AcceptAppointmentRequest) (*model.AcceptedAppointment, error) {
	apt, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Appointment with ID %d not found", appointmentID)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if apt.Status == model.AppointmentStatusAccepted {
		return nil, apperrors.InvalidState("This appointment has already been accepted")
	}

	// Idempotency guard against a double accept racing past the status check.
	if _, err := s.repo.GetByAppointmentID(ctx, appointmentID); err == nil {
		return nil, apperrors.InvalidState("This appointment has already been accepted")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up accepted appointment: %w", err)
	}

	patient, err := s.getPatient(ctx, apt.PatientID)
	if err != nil {
		return nil, err
	}

	// Walk-ins are already in the clinic when accepted, so they default to
	// attended; an explicit flag from the caller wins.
	isAttended := patient.IsWalkIn()
	if req != nil && req.IsAttended != nil {
		isAttended = *req.IsAttended
	}

	apt.Status = model.AppointmentStatusAccepted
	if err := s.appointmentRepo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	accepted := &model.AcceptedAppointment{
		AppointmentID:     apt.ID,
		PatientID:         apt.PatientID,
		ServiceID:         apt.ServiceID,
		PreferredDateTime: apt.PreferredDateTime,
		Symptom:           apt.Symptom,
		IsAttended:        isAttended,
	}
	if err := s.repo.Create(ctx, accepted); err != nil {
		return nil, fmt.Errorf("failed to create accepted appointment: %w", err)
	}
	s.metrics.AppointmentsAccepted.Inc()

	if _, err := s.reminderSvc.CreateForAcceptedAppointment(ctx, appointmentID); err != nil {
		s.logger.Error(err, "failed to create reminder for accepted appointment",
			"appointment_id", appointmentID)
	}

	subject := fmt.Sprintf("Appointment Accepted (ID: %d)", appointmentID)
	body := fmt.Sprintf("Hi %s, your appointment (ID %d) has been accepted for %s.",
		patient.FirstName, appointmentID, apt.PreferredDateTime.Format(model.TimeLayout))
	s.notifier.Notify(ctx, patient, subject, body)

	return accepted, nil
}

func (s *Service) GetAcceptedAppointment(ctx context.Context, id int64) (*model.AcceptedAppointment, error) {
	accepted, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Accepted appointment with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get accepted appointment: %w", err)
	}
	return accepted, nil
}

func (s *Service) ListAcceptedAppointments(ctx context.Context) ([]*model.AcceptedAppointment, error) {
	accepted, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted appointments: %w", err)
	}
	return accepted, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.AcceptedAppointment, error) {
	accepted, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted appointments for patient: %w", err)
	}
	return accepted, nil
}

func (s *Service) ListByAttendance(ctx context.Context, attended bool) ([]*model.AcceptedAppointment, error) {
	accepted, err := s.repo.ListByAttendance(ctx, attended)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted appointments by attendance: %w", err)
	}
	return accepted, nil
}

// SetAttendance toggles is_attended. Requesting the state the record is
// already in is rejected rather than silently succeeding.
func (s *Service) SetAttendance(ctx context.Context, id int64, attended bool) (*model.AcceptedAppointment, error) {
	accepted, err := s.GetAcceptedAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if accepted.IsAttended == attended {
		if attended {
			return nil, apperrors.InvalidState("This appointment has already been marked as attended")
		}
		return nil, apperrors.InvalidState("This appointment is already marked as not attended")
	}

	if err := s.repo.UpdateAttendance(ctx, id, attended); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	accepted.IsAttended = attended

	if patient, err := s.getPatient(ctx, accepted.PatientID); err != nil {
		s.logger.Error(err, "skipping attendance notification", "accepted_appointment_id", id)
	} else {
		state := "marked as absent"
		if attended {
			state = "marked as attended"
		}
		subject := fmt.Sprintf("Appointment Attendance Updated (ID: %d)", accepted.AppointmentID)
		body := fmt.Sprintf("Hi %s, your appointment on %s has been %s.",
			patient.FirstName, accepted.PreferredDateTime.Format(model.TimeLayout), state)
		s.notifier.Notify(ctx, patient, subject, body)
	}

	return accepted, nil
}

func (s *Service) DeleteAcceptedAppointment(ctx context.Context, id int64) error {
	if _, err := s.GetAcceptedAppointment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete accepted appointment: %w", err)
	}
	return nil
}

func (s *Service) getPatient(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.patientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Patient with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}
