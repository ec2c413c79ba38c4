package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/KurtMante/clinic-BE/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

type acceptedAppointmentRepository struct {
	db *sqlx.DB
}

type scheduleRepository struct {
	db *sqlx.DB
}

type reminderRepository struct {
	db *sqlx.DB
}

type rescheduleRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type medicalServiceRepository struct {
	db *sqlx.DB
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewAcceptedAppointmentRepository(db *sqlx.DB) repository.AcceptedAppointmentRepository {
	return &acceptedAppointmentRepository{db: db}
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func NewReminderRepository(db *sqlx.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func NewRescheduleRepository(db *sqlx.DB) repository.RescheduleRepository {
	return &rescheduleRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewMedicalServiceRepository(db *sqlx.DB) repository.MedicalServiceRepository {
	return &medicalServiceRepository{db: db}
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}
