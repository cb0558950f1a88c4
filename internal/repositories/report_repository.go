package repositories

import (
	"context"

	"building/internal/models"
)

// ReportRepository defines the interface for report data access.
type ReportRepository interface {
	GetAll(ctx context.Context) ([]models.Report, error)
	GetByID(ctx context.Context, id string) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id string) error
}
