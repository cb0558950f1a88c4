package handlers

import (
	"fmt"

	"building/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for maintenance reports.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes on router behind middlewares.
func (h *ReportHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	reportRoutes := router.Group("/reports", middlewares...)
	reportRoutes.Get("/", h.HandleGetReports)
	reportRoutes.Post("/", h.HandleCreateReport)
	reportRoutes.Patch("/", h.HandleUpdateReport)
	reportRoutes.Delete("/", h.HandleDeleteReport)
}

// HandleGetReports lists all reports with the owner's username.
func (h *ReportHandler) HandleGetReports(c *fiber.Ctx) error {
	reports, err := h.service.GetAllReports(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(reports)
}

// HandleCreateReport creates a new report.
func (h *ReportHandler) HandleCreateReport(c *fiber.Ctx) error {
	var in services.CreateReportInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	if _, err := h.service.CreateReport(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "New report created",
	})
}

// HandleUpdateReport replaces an existing report.
func (h *ReportHandler) HandleUpdateReport(c *fiber.Ctx) error {
	var in services.UpdateReportInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	report, err := h.service.UpdateReport(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fmt.Sprintf("'%s' updated", report.Title))
}

// HandleDeleteReport deletes the report named in the request body.
func (h *ReportHandler) HandleDeleteReport(c *fiber.Ctx) error {
	var in services.DeleteInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	report, err := h.service.DeleteReport(c.UserContext(), in.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fmt.Sprintf("Report '%s' with ID %s deleted", report.Title, report.ID))
}
