package services

import (
	"context"
	"errors"

	"building/internal/models"
	"building/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ReportService handles business logic related to maintenance reports.
type ReportService struct {
	repo     repositories.ReportRepository
	users    repositories.UserRepository
	validate *validator.Validate
	events   EventPublisher
	logger   *zap.Logger
}

// NewReportService creates a new ReportService. events may be nil.
func NewReportService(repo repositories.ReportRepository, users repositories.UserRepository, events EventPublisher, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		repo:     repo,
		users:    users,
		validate: validator.New(),
		events:   events,
		logger:   logger,
	}
}

// GetAllReports returns every report with its owner's name attached.
// Reports whose owner was deleted are kept with a nil Username.
func (s *ReportService) GetAllReports(ctx context.Context) ([]models.ReportWithUsername, error) {
	reports, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, notFoundError("No reports found")
	}

	seen := make(map[string]bool, len(reports))
	var ownerIDs []string
	for _, r := range reports {
		if !seen[r.User] {
			seen[r.User] = true
			ownerIDs = append(ownerIDs, r.User)
		}
	}
	owners, err := s.users.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(owners))
	for _, u := range owners {
		names[u.ID] = u.Name
	}

	result := make([]models.ReportWithUsername, 0, len(reports))
	for _, r := range reports {
		enriched := models.ReportWithUsername{Report: r}
		if name, ok := names[r.User]; ok {
			enriched.Username = &name
		}
		result = append(result, enriched)
	}
	return result, nil
}

// CreateReport stores a new, not yet completed report for an existing user.
func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError("All fields are required")
	}

	if _, err := s.users.GetByID(ctx, in.User); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, validationError("User not found")
		}
		return nil, err
	}

	report := &models.Report{
		User:  in.User,
		Title: in.Title,
		Text:  in.Text,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	publishEvent(s.events, s.logger, EventReportCreated, report.ID)
	return report, nil
}

// UpdateReport replaces every field of an existing report.
func (s *ReportService) UpdateReport(ctx context.Context, in UpdateReportInput) (*models.Report, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError("All fields are required")
	}

	report, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("Report not found")
		}
		return nil, err
	}

	report.User = in.User
	report.Title = in.Title
	report.Text = in.Text
	report.Completed = *in.Completed

	if err := s.repo.Update(ctx, report); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("Report not found")
		}
		return nil, err
	}

	publishEvent(s.events, s.logger, EventReportUpdated, report.ID)
	return report, nil
}

// DeleteReport permanently removes a report and returns the removed record.
func (s *ReportService) DeleteReport(ctx context.Context, id string) (*models.Report, error) {
	if id == "" {
		return nil, validationError("Report ID required")
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("Report not found")
		}
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("Report not found")
		}
		return nil, err
	}

	publishEvent(s.events, s.logger, EventReportDeleted, id)
	return report, nil
}
