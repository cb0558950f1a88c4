package repositories

import (
	"context"
	"errors"
	"fmt"

	"building/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{
		db: db,
	}
}

// GetAll retrieves all reports from the database.
func (r *GORMReportRepository) GetAll(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).Order("created_at").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to get all reports: %w", err)
	}
	return reports, nil
}

// GetByID retrieves a single report by its ID from the database.
func (r *GORMReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report by ID %s: %w", id, err)
	}
	return &report, nil
}

// Create creates a new report in the database.
func (r *GORMReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing report.
func (r *GORMReportRepository) Update(ctx context.Context, report *models.Report) error {
	res := r.db.WithContext(ctx).Model(report).Select("*").Omit("id", "created_at").Updates(report)
	if res.Error != nil {
		return fmt.Errorf("failed to update report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a report by its ID from the database.
func (r *GORMReportRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Report{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
