package http

import (
	"errors"
	"net/http"
	"strconv"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/audit/repository"
	"due-diligence-backend/internal/audit/service"
	"due-diligence-backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuditHandler handles HTTP requests for company audits.
type AuditHandler struct {
	auditService   service.AuditService
	recordService  service.RecordService
	summaryService service.SummaryService
	logger         *logger.Logger
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(
	auditService service.AuditService,
	recordService service.RecordService,
	summaryService service.SummaryService,
	logger *logger.Logger,
) *AuditHandler {
	return &AuditHandler{
		auditService:   auditService,
		recordService:  recordService,
		summaryService: summaryService,
		logger:         logger,
	}
}

// RegisterRoutes registers the audit routes to the Echo group.
func (h *AuditHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAudit)
	g.GET("", h.ListCompanies)
	g.GET("/:name", h.GetAudit)
	g.GET("/:name/summary", h.GetSummary)
}

// CreateAudit starts a new audit. Sync mode answers 201 with the profile
// sub-record; async mode answers 202 with every category pending.
func (h *AuditHandler) CreateAudit(c echo.Context) error {
	var req dto.CreateAuditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	response, err := h.auditService.RunAudit(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrAuditInFlight):
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		default:
			h.logger.Error("Audit dispatch failed", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
	}

	if response.Mode == service.ModeAsync {
		return c.JSON(http.StatusAccepted, response)
	}
	return c.JSON(http.StatusCreated, response)
}

// GetAudit returns everything committed for a company plus the per-category
// statuses.
func (h *AuditHandler) GetAudit(c echo.Context) error {
	companyName := c.Param("name")
	response, err := h.recordService.GetByCompanyName(c.Request().Context(), companyName)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Record set lookup failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, response)
}

// ListCompanies pages through audited companies, optionally filtered by a
// case-insensitive name substring.
func (h *AuditHandler) ListCompanies(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	response, err := h.recordService.ListCompanies(c.Request().Context(), c.QueryParam("search"), page, pageSize)
	if err != nil {
		h.logger.Error("Company listing failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, response)
}

// GetSummary returns the AI risk summary of a company.
func (h *AuditHandler) GetSummary(c echo.Context) error {
	companyName := c.Param("name")
	response, err := h.summaryService.Summarize(c.Request().Context(), companyName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrSummaryUnavailable):
			return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, repository.ErrStore):
			h.logger.Error("Summary lookup failed", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		default:
			h.logger.Error("Summary generation failed", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
	}
	return c.JSON(http.StatusOK, response)
}
