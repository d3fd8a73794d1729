package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/middleware"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/internal/utils"
	"github.com/piresc/estamp/services/forms"
)

// FormHandler handles HTTP requests for stamp forms and their reports
type FormHandler struct {
	formUC forms.FormUC
}

// NewFormHandler creates a new form handler
func NewFormHandler(formUC forms.FormUC) *FormHandler {
	return &FormHandler{
		formUC: formUC,
	}
}

// Create stores a form and generates its first report
func (h *FormHandler) Create(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.FormRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid request payload for form", logger.Err(err))
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, utils.ValidationMessage(err, "Missing required form fields"))
	}

	form, err := h.formUC.CreateForm(c.Request().Context(), identity.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Form created successfully with report", form)
}

// List returns the caller's forms
func (h *FormHandler) List(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	forms, err := h.formUC.ListForms(c.Request().Context(), identity.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(forms),
		"data":    forms,
	})
}

// Get returns one owned form with its report validity
func (h *FormHandler) Get(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	detail, err := h.formUC.GetForm(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    detail.Form,
		"expired": detail.Expired,
	})
}

// Regenerate replaces a lapsed report
func (h *FormHandler) Regenerate(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	form, err := h.formUC.RegenerateReport(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Report regenerated successfully", form)
}

// History lists every report generated for a form
func (h *FormHandler) History(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	reports, err := h.formUC.ReportHistory(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(reports),
		"data":    reports,
	})
}
