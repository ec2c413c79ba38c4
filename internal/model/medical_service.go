package model

import (
	"time"
)

// MedicalService is read-only here: catalog management lives outside this
// service.
type MedicalService struct {
	ID          int64     `db:"service_id" json:"service_id"`
	ServiceName string    `db:"service_name" json:"service_name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
