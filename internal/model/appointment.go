package model

import (
	"time"
)

// TimeLayout is the wire format for appointment timestamps.
const TimeLayout = "2006-01-02 15:04:05"

type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "Pending"
	AppointmentStatusAccepted AppointmentStatus = "Accepted"
	AppointmentStatusDeclined AppointmentStatus = "Declined"
)

// Valid reports whether the status is one of the closed set.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusAccepted, AppointmentStatusDeclined:
		return true
	}
	return false
}

type Appointment struct {
	ID                int64             `db:"appointment_id" json:"appointment_id"`
	PatientID         int64             `db:"patient_id" json:"patient_id"`
	ServiceID         int64             `db:"service_id" json:"service_id"`
	PreferredDateTime time.Time         `db:"preferred_date_time" json:"preferred_date_time"`
	Symptom           string            `db:"symptom" json:"symptom"`
	Status            AppointmentStatus `db:"status" json:"status"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientID         int64              `json:"patient_id" binding:"required"`
	ServiceID         int64              `json:"service_id" binding:"required"`
	PreferredDateTime string             `json:"preferred_date_time" binding:"required"`
	Symptom           string             `json:"symptom"`
	Status            *AppointmentStatus `json:"status"`
	IsWalkIn          bool               `json:"is_walk_in"`
}

type UpdateAppointmentRequest struct {
	PatientID         *int64             `json:"patient_id"`
	ServiceID         *int64             `json:"service_id"`
	PreferredDateTime *string            `json:"preferred_date_time"`
	Symptom           *string            `json:"symptom"`
	Status            *AppointmentStatus `json:"status"`
	IsWalkIn          bool               `json:"is_walk_in"`
}
