package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/repository"
	"github.com/KurtMante/clinic-BE/internal/service/appointment"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
	"github.com/KurtMante/clinic-BE/pkg/logger"
)

type Service struct {
	repo            repository.ReminderRepository
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.MedicalServiceRepository
	patientRepo     repository.PatientRepository
	logger          *logger.Logger
}

func NewService(
	repo repository.ReminderRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.MedicalServiceRepository,
	patientRepo repository.PatientRepository,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		patientRepo:     patientRepo,
		logger:          logger,
	}
}

// CreateForAcceptedAppointment is idempotent: if a reminder already
// references the appointment, it is returned instead of duplicated.
func (s *Service) CreateForAcceptedAppointment(ctx context.Context, appointmentID int64) (*model.Reminder, error) {
	apt, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Appointment with ID %d not found", appointmentID)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	svc, err := s.serviceRepo.Get(ctx, apt.ServiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Medical service with ID %d not found", apt.ServiceID)
		}
		return nil, fmt.Errorf("failed to get medical service: %w", err)
	}

	existing, err := s.repo.GetByAppointmentID(ctx, appointmentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up existing reminder: %w", err)
	}

	message := fmt.Sprintf(
		"Reminder: You have a %s appointment on %s at %s with Dr. Wahing. Please arrive 10 minutes early.",
		svc.ServiceName,
		apt.PreferredDateTime.Format("January 2, 2006"),
		apt.PreferredDateTime.Format("03:04 PM"),
	)

	reminder := &model.Reminder{
		PatientID:         apt.PatientID,
		AppointmentID:     &apt.ID,
		ServiceName:       &svc.ServiceName,
		PreferredDateTime: &apt.PreferredDateTime,
		Message:           message,
	}
	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

// CreateReminder saves a free-form reminder not tied to any appointment.
func (s *Service) CreateReminder(ctx context.Context, req *model.CreateReminderRequest) (*model.Reminder, error) {
	if req.PatientID == 0 || req.Message == "" {
		return nil, apperrors.Validation("patientId and message are required")
	}

	if _, err := s.getPatient(ctx, req.PatientID); err != nil {
		return nil, err
	}

	reminder := &model.Reminder{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		ServiceName:   req.ServiceName,
		Message:       req.Message,
	}
	if req.PreferredDateTime != nil {
		t, err := appointment.ParseDateTime(*req.PreferredDateTime)
		if err != nil {
			return nil, err
		}
		reminder.PreferredDateTime = &t
	}

	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

func (s *Service) GetReminder(ctx context.Context, id int64) (*model.Reminder, error) {
	reminder, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Reminder with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

func (s *Service) ListReminders(ctx context.Context) ([]*model.Reminder, error) {
	reminders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

func (s *Service) ListRemindersByPatient(ctx context.Context, patientID int64) ([]*model.Reminder, error) {
	if _, err := s.getPatient(ctx, patientID); err != nil {
		return nil, err
	}
	reminders, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for patient: %w", err)
	}
	return reminders, nil
}

func (s *Service) ListUnreadRemindersByPatient(ctx context.Context, patientID int64) ([]*model.Reminder, error) {
	if _, err := s.getPatient(ctx, patientID); err != nil {
		return nil, err
	}
	reminders, err := s.repo.ListUnreadByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread reminders: %w", err)
	}
	return reminders, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id int64) (*model.Reminder, error) {
	if _, err := s.GetReminder(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to mark reminder read: %w", err)
	}
	return s.GetReminder(ctx, id)
}

func (s *Service) DeleteReminder(ctx context.Context, id int64) error {
	if _, err := s.GetReminder(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
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
