package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/services/auth"
	httpHandler "github.com/piresc/estamp/services/auth/handler/http"
)

// Handler combines all handlers for the auth service
type Handler struct {
	authHTTP *httpHandler.AuthHandler
}

// NewHandler creates a new combined handler
func NewHandler(authUC auth.AuthUC) *Handler {
	return &Handler{
		authHTTP: httpHandler.NewAuthHandler(authUC),
	}
}

// RegisterRoutes mounts /api/auth. Routes that send or check a code go
// through otpLimiter; /me requires a session.
func (h *Handler) RegisterRoutes(e *echo.Echo, sessionAuth, otpLimiter echo.MiddlewareFunc) {
	authGroup := e.Group("/api/auth")

	authGroup.POST("/signup", h.authHTTP.Signup, otpLimiter)
	authGroup.POST("/verify-otp", h.authHTTP.VerifyOTP, otpLimiter)
	authGroup.POST("/login", h.authHTTP.Login)
	authGroup.POST("/forgot-password", h.authHTTP.ForgotPassword, otpLimiter)
	authGroup.POST("/verify-reset-otp", h.authHTTP.VerifyResetOTP, otpLimiter)
	authGroup.POST("/reset-password", h.authHTTP.ResetPassword)

	authGroup.GET("/me", h.authHTTP.Me, sessionAuth)
}
