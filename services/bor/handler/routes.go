package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/services/bor"
	httpHandler "github.com/piresc/estamp/services/bor/handler/http"
)

// Handler combines all handlers for the BOR proxy
type Handler struct {
	borHTTP *httpHandler.BORHandler
}

// NewHandler creates a new combined handler
func NewHandler(borUC bor.BORUC) *Handler {
	return &Handler{
		borHTTP: httpHandler.NewBORHandler(borUC),
	}
}

// RegisterRoutes mounts the proxy under /api/bor behind auth
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	borGroup := e.Group("/api/bor", auth)
	borGroup.GET("/instruments", h.borHTTP.Instruments)
	borGroup.POST("/duty-calc", h.borHTTP.DutyCalc)
	borGroup.POST("/issue", h.borHTTP.Issue)
	borGroup.GET("/verify/:id", h.borHTTP.Verify)
}
