package postgres

import (
	"context"
	"fmt"

	"github.com/KurtMante/clinic-BE/internal/model"
)

func (r *medicalServiceRepository) Get(ctx context.Context, id int64) (*model.MedicalService, error) {
	query := `
		SELECT service_id, service_name, description, created_at
		FROM medical_services
		WHERE service_id = $1
	`
	var service model.MedicalService
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, fmt.Errorf("failed to get medical service: %w", err)
	}
	return &service, nil
}
