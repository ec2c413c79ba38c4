package model

import (
	"time"
)

// AcceptedAppointment is the canonical record that an appointment will
// happen or happened. The owning Appointment row is kept, only its status
// moves to Accepted; both reference appointment_id.
type AcceptedAppointment struct {
	ID                int64     `db:"accepted_appointment_id" json:"accepted_appointment_id"`
	AppointmentID     int64     `db:"appointment_id" json:"appointment_id"`
	PatientID         int64     `db:"patient_id" json:"patient_id"`
	ServiceID         int64     `db:"service_id" json:"service_id"`
	PreferredDateTime time.Time `db:"preferred_date_time" json:"preferred_date_time"`
	Symptom           string    `db:"symptom" json:"symptom"`
	IsAttended        bool      `db:"is_attended" json:"is_attended"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type AcceptAppointmentRequest struct {
	// IsAttended, when supplied, overrides the walk-in default.
	IsAttended *bool `json:"is_attended"`
}
