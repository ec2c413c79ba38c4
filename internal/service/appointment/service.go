package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/repository"
	"github.com/KurtMante/clinic-BE/internal/service/notification"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
	"github.com/KurtMante/clinic-BE/pkg/logger"
	"github.com/KurtMante/clinic-BE/pkg/metrics"
)

// Business rules
const (
	// Each appointment occupies a 1-hour slot: no two start times may fall
	// within an hour of each other.
	SlotWindow = time.Hour
	// Non-walk-in bookings must start at least this far in the future.
	BookingBuffer = 5 * time.Minute
)

// AvailabilityChecker decides whether the doctor takes a booking at the
// candidate time.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, candidate time.Time, isWalkIn bool) error
}

type Service struct {
	repo         repository.AppointmentRepository
	patientRepo  repository.PatientRepository
	serviceRepo  repository.MedicalServiceRepository
	availability AvailabilityChecker
	notifier     notification.Notifier
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	serviceRepo repository.MedicalServiceRepository,
	availability AvailabilityChecker,
	notifier notification.Notifier,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		repo:         repo,
		patientRepo:  patientRepo,
		serviceRepo:  serviceRepo,
		availability: availability,
		notifier:     notifier,
		logger:       logger,
		metrics:      metrics,
	}
}

// ParseDateTime parses the wire format for appointment timestamps.
func ParseDateTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(model.TimeLayout, value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.Validation("Invalid date and time format. Use YYYY-MM-DD HH:MM:SS")
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	symptom := strings.TrimSpace(req.Symptom)
	if symptom == "" {
		return nil, apperrors.Validation("Symptom is required")
	}

	status := model.AppointmentStatusPending
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation("Status must be one of: Pending, Accepted, or Declined")
		}
		status = *req.Status
	}

	patient, err := s.getPatient(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	isWalkIn := req.IsWalkIn || patient.IsWalkIn()

	candidate, err := ParseDateTime(req.PreferredDateTime)
	if err != nil {
		return nil, err
	}

	// Walk-ins are entered by staff for a patient already in the clinic, so
	// the past/buffer guard does not apply.
	if !isWalkIn {
		if err := s.checkBookingBuffer(candidate); err != nil {
			return nil, err
		}
	}

	if err := s.availability.CheckAvailability(ctx, candidate, isWalkIn); err != nil {
		return nil, err
	}

	if _, err := s.getService(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	if err := s.checkGlobalConflicts(ctx, candidate, nil); err != nil {
		return nil, err
	}
	if err := s.checkPatientConflicts(ctx, req.PatientID, candidate, nil); err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		PatientID:         req.PatientID,
		ServiceID:         req.ServiceID,
		PreferredDateTime: candidate,
		Symptom:           symptom,
		Status:            status,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		if apperrors.Is(err, apperrors.ErrSchedulingConflict) {
			s.metrics.ConflictsRejected.WithLabelValues("slot_key").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	s.metrics.AppointmentsCreated.Inc()

	subject := fmt.Sprintf("Appointment Created (ID: %d)", appointment.ID)
	body := fmt.Sprintf(
		"Hi %s, your appointment (ID %d) has been created with status %s. Date/Time: %s. Reason: %s. We will notify you when it is accepted.",
		patient.FirstName, appointment.ID, appointment.Status,
		appointment.PreferredDateTime.Format(model.TimeLayout), appointment.Symptom,
	)
	s.notifier.Notify(ctx, patient, subject, body)

	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Appointment with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	if _, err := s.getPatient(ctx, patientID); err != nil {
		return nil, err
	}
	appointments, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for patient: %w", err)
	}
	return appointments, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	existing, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.Validation("Status must be one of: Pending, Accepted, or Declined")
	}

	var patient *model.Patient
	if req.PatientID != nil {
		if patient, err = s.getPatient(ctx, *req.PatientID); err != nil {
			return nil, err
		}
	}
	if req.ServiceID != nil {
		if _, err := s.getService(ctx, *req.ServiceID); err != nil {
			return nil, err
		}
	}

	newTime := existing.PreferredDateTime
	if req.PreferredDateTime != nil {
		candidate, err := ParseDateTime(*req.PreferredDateTime)
		if err != nil {
			return nil, err
		}
		// The walk-in flag is not persisted with the appointment; an update
		// is treated as a regular booking unless the caller passes it again.
		if !req.IsWalkIn {
			if err := s.checkBookingBuffer(candidate); err != nil {
				return nil, err
			}
		}
		if err := s.availability.CheckAvailability(ctx, candidate, req.IsWalkIn); err != nil {
			return nil, err
		}
		if err := s.checkGlobalConflicts(ctx, candidate, &id); err != nil {
			return nil, err
		}
		newTime = candidate
	}

	if req.PreferredDateTime != nil || req.PatientID != nil {
		newPatientID := existing.PatientID
		if req.PatientID != nil {
			newPatientID = *req.PatientID
		}
		if err := s.checkPatientConflicts(ctx, newPatientID, newTime, &id); err != nil {
			return nil, err
		}
	}

	if req.PatientID != nil {
		existing.PatientID = *req.PatientID
	}
	if req.ServiceID != nil {
		existing.ServiceID = *req.ServiceID
	}
	if req.Symptom != nil {
		symptom := strings.TrimSpace(*req.Symptom)
		if symptom == "" {
			return nil, apperrors.Validation("Symptom is required")
		}
		existing.Symptom = symptom
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	existing.PreferredDateTime = newTime

	if err := s.repo.Update(ctx, existing); err != nil {
		if apperrors.Is(err, apperrors.ErrSchedulingConflict) {
			s.metrics.ConflictsRejected.WithLabelValues("slot_key").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if req.Status != nil || req.PreferredDateTime != nil {
		if patient == nil {
			if patient, err = s.getPatient(ctx, existing.PatientID); err != nil {
				s.logger.Error(err, "skipping update notification", "appointment_id", id)
				return existing, nil
			}
		}
		var changes []string
		if req.Status != nil {
			changes = append(changes, fmt.Sprintf("Status: %s", *req.Status))
		}
		if req.PreferredDateTime != nil {
			changes = append(changes, fmt.Sprintf("Date/Time: %s", newTime.Format(model.TimeLayout)))
		}
		subject := fmt.Sprintf("Appointment Updated (ID: %d)", id)
		body := fmt.Sprintf("Hi %s, your appointment (ID %d) has been updated. %s",
			patient.FirstName, id, strings.Join(changes, " | "))
		s.notifier.Notify(ctx, patient, subject, body)
	}

	return existing, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	if _, err := s.GetAppointment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (s *Service) checkBookingBuffer(candidate time.Time) error {
	now := time.Now()
	if !candidate.After(now.Add(BookingBuffer)) {
		return apperrors.Validationf(
			"Appointment cannot be scheduled in the past or too soon. Current time: %s, Requested time: %s",
			now.Format(model.TimeLayout), candidate.Format(model.TimeLayout),
		)
	}
	return nil
}

func (s *Service) checkGlobalConflicts(ctx context.Context, candidate time.Time, excludeID *int64) error {
	conflicts, err := s.repo.FindConflictsGlobal(ctx, candidate.Add(-SlotWindow), candidate.Add(SlotWindow), excludeID)
	if err != nil {
		return fmt.Errorf("failed to check time slot conflicts: %w", err)
	}
	if len(conflicts) > 0 {
		s.metrics.ConflictsRejected.WithLabelValues("global").Inc()
		return apperrors.SchedulingConflictf(
			"This time slot is already booked. There is an appointment at %s. Each appointment requires a 1-hour time slot. Please choose a different time.",
			conflicts[0].PreferredDateTime.Format(model.TimeLayout),
		)
	}
	return nil
}

func (s *Service) checkPatientConflicts(ctx context.Context, patientID int64, candidate time.Time, excludeID *int64) error {
	conflicts, err := s.repo.FindConflictsForPatient(ctx, patientID, candidate.Add(-SlotWindow), candidate.Add(SlotWindow), excludeID)
	if err != nil {
		return fmt.Errorf("failed to check patient conflicts: %w", err)
	}
	if len(conflicts) > 0 {
		s.metrics.ConflictsRejected.WithLabelValues("patient").Inc()
		return apperrors.SchedulingConflictf(
			"Patient already has an appointment at %s. Each appointment requires a 1-hour time slot. Please choose a different time.",
			conflicts[0].PreferredDateTime.Format(model.TimeLayout),
		)
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

func (s *Service) getService(ctx context.Context, id int64) (*model.MedicalService, error) {
	service, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Medical service with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get medical service: %w", err)
	}
	return service, nil
}
