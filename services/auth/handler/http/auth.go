package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/middleware"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/internal/utils"
	"github.com/piresc/estamp/services/auth"
)

const msgInvalidPayload = "Invalid request payload"

// AuthHandler handles HTTP requests for signup, login and password reset
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// Signup stages a registration and emails a code
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid request payload for signup", logger.Err(err))
		return utils.BadRequestResponse(c, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, utils.ValidationMessage(err, "Name, email and password are required"))
	}

	email, err := h.authUC.RequestOTP(c.Request().Context(), &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "OTP sent to your email",
		"email":   email,
	})
}

// VerifyOTP finishes a registration
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, utils.ValidationMessage(err, "Email and OTP are required"))
	}

	result, err := h.authUC.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Signup successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

// Login exchanges credentials for a session token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, utils.ValidationMessage(err, "Email and password are required"))
	}

	token, err := h.authUC.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	user, err := h.authUC.GetUser(c.Request().Context(), identity.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// ForgotPassword emails a reset code
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, utils.ValidationMessage(err, "Email is required"))
	}

	email, err := h.authUC.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "OTP sent to your email",
		"email":   email,
	})
}

// VerifyResetOTP trades a reset code for a reset token
func (h *AuthHandler) VerifyResetOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, utils.ValidationMessage(err, "Email and OTP are required"))
	}

	result, err := h.authUC.VerifyResetOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "OTP verified",
		"resetToken": result.ResetToken,
		"expiresIn":  result.ExpiresIn,
	})
}

// ResetPassword sets a new password using a reset token
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, utils.ValidationMessage(err, "Token and newPassword are required"))
	}

	if err := h.authUC.SetNewPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}
