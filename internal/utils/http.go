package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/estamp/internal/pkg/apperror"
	"github.com/piresc/estamp/internal/pkg/logger"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Message: message,
		Code:    statusCode,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, message)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, message)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, message string) error {
	if message == "" {
		message = "Something went wrong"
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, message)
}

// TooManyRequestsResponse sends a 429 Too Many Requests response
func TooManyRequestsResponse(c echo.Context, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return ErrorResponseHandler(c, http.StatusTooManyRequests, message)
}

// HandleError translates an application error into its HTTP response.
// Internal and configuration failures are logged and answered generically.
func HandleError(c echo.Context, err error) error {
	appErr, ok := apperror.As(err)
	if !ok {
		noticeError(c, err)
		logger.Error("Unhandled error",
			logger.String("method", c.Request().Method),
			logger.String("path", c.Path()),
			logger.Err(err))
		return InternalServerErrorResponse(c, "")
	}

	status := apperror.HTTPStatus(appErr.Kind)
	switch {
	case status >= http.StatusInternalServerError && status != http.StatusBadGateway:
		noticeError(c, err)
		logger.Error("Request failed",
			logger.String("kind", appErr.Kind.String()),
			logger.String("path", c.Path()),
			logger.Err(err))
		return InternalServerErrorResponse(c, "")
	case status == http.StatusBadGateway:
		noticeError(c, err)
		logger.Warn("Upstream failure",
			logger.String("kind", appErr.Kind.String()),
			logger.Int("upstream_status", appErr.Status),
			logger.String("upstream_body", Truncate(string(appErr.Body), 512)),
			logger.Err(err))
	}

	return ErrorResponseHandler(c, status, appErr.Message)
}

func noticeError(c echo.Context, err error) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.NoticeError(err)
	}
}
