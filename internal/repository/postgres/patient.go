package postgres

import (
	"context"
	"fmt"

	"github.com/KurtMante/clinic-BE/internal/model"
)

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `
		SELECT patient_id, first_name, last_name, email, phone, role, created_at
		FROM patients
		WHERE patient_id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}
