package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/services/forms"
	httpHandler "github.com/piresc/estamp/services/forms/handler/http"
)

// Handler combines all handlers for forms and reports
type Handler struct {
	formHTTP *httpHandler.FormHandler
}

// NewHandler creates a new combined handler
func NewHandler(formUC forms.FormUC) *Handler {
	return &Handler{
		formHTTP: httpHandler.NewFormHandler(formUC),
	}
}

// RegisterRoutes mounts the form API under /api/reports behind auth
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	reports := e.Group("/api/reports", auth)
	reports.POST("", h.formHTTP.Create)
	reports.GET("", h.formHTTP.List)
	reports.GET("/:id", h.formHTTP.Get)
	reports.POST("/:id/regenerate", h.formHTTP.Regenerate)
	reports.GET("/:id/history", h.formHTTP.History)
}
