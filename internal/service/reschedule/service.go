package reschedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/repository"
	apperrors "github.com/KurtMante/clinic-BE/pkg/errors"
)

type Service struct {
	repo            repository.RescheduleRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
}

func NewService(repo repository.RescheduleRepository, appointmentRepo repository.AppointmentRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
	}
}

func (s *Service) CreateReschedule(ctx context.Context, req *model.CreateRescheduleRequest) (*model.Reschedule, error) {
	if _, err := s.appointmentRepo.Get(ctx, req.AppointmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Appointment with ID %d not found", req.AppointmentID)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Patient with ID %d not found", req.PatientID)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	reschedule := &model.Reschedule{
		AppointmentID: req.AppointmentID,
		PatientID:     req.PatientID,
		ServiceID:     req.ServiceID,
		Notes:         req.Notes,
		Confirmation:  req.Confirmation,
	}
	if err := s.repo.Create(ctx, reschedule); err != nil {
		return nil, fmt.Errorf("failed to create reschedule: %w", err)
	}
	return reschedule, nil
}

func (s *Service) GetReschedule(ctx context.Context, id int64) (*model.Reschedule, error) {
	reschedule, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf(err, "Reschedule with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get reschedule: %w", err)
	}
	return reschedule, nil
}

func (s *Service) ListReschedules(ctx context.Context) ([]*model.Reschedule, error) {
	reschedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reschedules: %w", err)
	}
	return reschedules, nil
}

func (s *Service) ListReschedulesByPatient(ctx context.Context, patientID int64) ([]*model.Reschedule, error) {
	reschedules, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reschedules for patient: %w", err)
	}
	return reschedules, nil
}

func (s *Service) UpdateReschedule(ctx context.Context, id int64, req *model.UpdateRescheduleRequest) (*model.Reschedule, error) {
	existing, err := s.GetReschedule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if req.Confirmation != nil {
		existing.Confirmation = *req.Confirmation
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update reschedule: %w", err)
	}
	return existing, nil
}

func (s *Service) DeleteReschedule(ctx context.Context, id int64) error {
	if _, err := s.GetReschedule(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reschedule: %w", err)
	}
	return nil
}
