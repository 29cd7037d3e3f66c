package contracts

import (
	"context"
	"hospital-service/internal/app/models"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
}
