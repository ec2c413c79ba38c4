package model

import (
	"time"
)

// Reschedule is a patient-initiated request to move an accepted appointment.
type Reschedule struct {
	ID            int64     `db:"reschedule_id" json:"reschedule_id"`
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	ServiceID     int64     `db:"service_id" json:"service_id"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	Confirmation  bool      `db:"confirmation" json:"confirmation"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRescheduleRequest struct {
	AppointmentID int64   `json:"appointment_id" binding:"required"`
	PatientID     int64   `json:"patient_id" binding:"required"`
	ServiceID     int64   `json:"service_id" binding:"required"`
	Notes         *string `json:"notes"`
	Confirmation  bool    `json:"confirmation"`
}

type UpdateRescheduleRequest struct {
	Notes        *string `json:"notes"`
	Confirmation *bool   `json:"confirmation"`
}
