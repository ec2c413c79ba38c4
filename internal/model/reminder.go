package model

import (
	"time"
)

// Reminder is derived state: at most one appointment-linked reminder exists
// per appointment_id. AppointmentID is nil for free-form reminders.
type Reminder struct {
	ID                int64      `db:"reminder_id" json:"reminder_id"`
	PatientID         int64      `db:"patient_id" json:"patient_id"`
	AppointmentID     *int64     `db:"appointment_id" json:"appointment_id,omitempty"`
	ServiceName       *string    `db:"service_name" json:"service_name,omitempty"`
	PreferredDateTime *time.Time `db:"preferred_date_time" json:"preferred_date_time,omitempty"`
	Message           string     `db:"message" json:"message"`
	IsRead            bool       `db:"is_read" json:"is_read"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateReminderRequest struct {
	PatientID         int64   `json:"patient_id" binding:"required"`
	AppointmentID     *int64  `json:"appointment_id"`
	ServiceName       *string `json:"service_name"`
	PreferredDateTime *string `json:"preferred_date_time"`
	Message           string  `json:"message" binding:"required"`
}
