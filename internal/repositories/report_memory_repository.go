package repositories

import (
	"context"
	"sync"
	"time"

	"building/internal/models"

	"github.com/google/uuid"
)

// MemoryReportRepository is an in-memory implementation of ReportRepository.
type MemoryReportRepository struct {
	reports map[string]models.Report
	order   []string
	mu      sync.RWMutex
}

// NewMemoryReportRepository creates a new instance of MemoryReportRepository.
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{
		reports: make(map[string]models.Report),
	}
}

// GetAll returns all reports in insertion order.
func (r *MemoryReportRepository) GetAll(_ context.Context) ([]models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reportList := make([]models.Report, 0, len(r.order))
	for _, id := range r.order {
		reportList = append(reportList, r.reports[id])
	}
	return reportList, nil
}

// GetByID returns a report by its ID.
func (r *MemoryReportRepository) GetByID(_ context.Context, id string) (*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &report, nil
}

// Create adds a new report.
func (r *MemoryReportRepository) Create(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	r.reports[report.ID] = *report
	r.order = append(r.order, report.ID)
	return nil
}

// Update replaces an existing report.
func (r *MemoryReportRepository) Update(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.reports[report.ID]
	if !ok {
		return ErrNotFound
	}
	report.CreatedAt = existing.CreatedAt
	report.UpdatedAt = time.Now()
	r.reports[report.ID] = *report
	return nil
}

// Delete removes a report by its ID.
func (r *MemoryReportRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[id]; !ok {
		return ErrNotFound
	}
	delete(r.reports, id)
	r.order = removeID(r.order, id)
	return nil
}
