package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KurtMante/clinic-BE/internal/model"
)

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		// FindConflictsGlobal returns appointments whose start time falls
		// strictly inside (windowStart, windowEnd), any patient.
		FindConflictsGlobal(ctx context.Context, windowStart, windowEnd time.Time, excludeID *int64) ([]*model.Appointment, error)
		// FindConflictsForPatient is the per-patient variant.
		FindConflictsForPatient(ctx context.Context, patientID int64, windowStart, windowEnd time.Time, excludeID *int64) ([]*model.Appointment, error)
	}

	AcceptedAppointmentRepository interface {
		Create(ctx context.Context, accepted *model.AcceptedAppointment) error
		Get(ctx context.Context, id int64) (*model.AcceptedAppointment, error)
		GetByAppointmentID(ctx context.Context, appointmentID int64) (*model.AcceptedAppointment, error)
		List(ctx context.Context) ([]*model.AcceptedAppointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.AcceptedAppointment, error)
		ListByAttendance(ctx context.Context, attended bool) ([]*model.AcceptedAppointment, error)
		UpdateAttendance(ctx context.Context, id int64, attended bool) error
		Delete(ctx context.Context, id int64) error
	}

	ScheduleRepository interface {
		FindByWeekday(ctx context.Context, weekday int) (*model.Schedule, error)
		List(ctx context.Context) ([]*model.Schedule, error)
		Upsert(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error)
		UpdateStatus(ctx context.Context, weekday int, status model.ScheduleStatus, startTime, endTime *string) (*model.Schedule, error)
		AppendNote(ctx context.Context, weekday int, note string) (*model.Schedule, error)
	}

	ReminderRepository interface {
		Create(ctx context.Context, reminder *model.Reminder) error
		Get(ctx context.Context, id int64) (*model.Reminder, error)
		GetByAppointmentID(ctx context.Context, appointmentID int64) (*model.Reminder, error)
		List(ctx context.Context) ([]*model.Reminder, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Reminder, error)
		ListUnreadByPatient(ctx context.Context, patientID int64) ([]*model.Reminder, error)
		MarkRead(ctx context.Context, id int64) error
		Delete(ctx context.Context, id int64) error
	}

	RescheduleRepository interface {
		Create(ctx context.Context, reschedule *model.Reschedule) error
		Get(ctx context.Context, id int64) (*model.Reschedule, error)
		List(ctx context.Context) ([]*model.Reschedule, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Reschedule, error)
		Update(ctx context.Context, reschedule *model.Reschedule) error
		Delete(ctx context.Context, id int64) error
	}

	// PatientRepository is read-only: account management is out of scope.
	PatientRepository interface {
		Get(ctx context.Context, id int64) (*model.Patient, error)
	}

	// MedicalServiceRepository is read-only: catalog CRUD is out of scope.
	MedicalServiceRepository interface {
		Get(ctx context.Context, id int64) (*model.MedicalService, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		GetPendingWithLock(ctx context.Context, limit int) ([]*model.Notification, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, lastError *string) error
		DeleteSentBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
