package model

import (
	"time"
)

type PatientRole string

const (
	PatientRolePatient PatientRole = "Patient"
	PatientRoleAdmin   PatientRole = "Admin"
	PatientRoleWalkin  PatientRole = "Walkin"
)

// Patient is read-only here: account management lives outside this service.
type Patient struct {
	ID        int64       `db:"patient_id" json:"patient_id"`
	FirstName string      `db:"first_name" json:"first_name"`
	LastName  string      `db:"last_name" json:"last_name"`
	Email     string      `db:"email" json:"email"`
	Phone     *string     `db:"phone" json:"phone,omitempty"`
	Role      PatientRole `db:"role" json:"role"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// IsWalkIn reports whether the patient was registered in person by staff.
func (p *Patient) IsWalkIn() bool {
	return p.Role == PatientRoleWalkin
}
