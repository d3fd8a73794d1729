package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
)

// UserIDKey is the echo context key the auth gate stores the caller id under
const UserIDKey = "user_id"

// RequestLog describes one completed HTTP request
type RequestLog struct {
	Method    string
	Path      string
	ClientIP  string
	UserID    string
	RequestID string
	Status    int
	Latency   time.Duration
	Err       error
}

// LogRequest writes r at error for 5xx, warn for 4xx and info otherwise
func (zl *ZapLogger) LogRequest(txn *newrelic.Transaction, r RequestLog) {
	log := zl.WithNewRelicContext(txn).With(
		zap.String("service", zl.service),
		zap.String("method", r.Method),
		zap.String("path", r.Path),
		zap.Int("status", r.Status),
		zap.Int64("latency_ms", r.Latency.Milliseconds()),
		zap.String("client_ip", r.ClientIP),
		zap.String("user_id", r.UserID),
		zap.String("request_id", r.RequestID),
	)

	switch {
	case r.Status >= 500:
		if r.Err != nil {
			log = log.With(zap.Error(r.Err))
		}
		log.Error("Server error")
	case r.Status >= 400:
		log.Warn("Client error")
	default:
		log.Info("Request processed")
	}
}

// ZapEchoMiddleware logs every request and tags the New Relic transaction
// with the caller and request ids
func ZapEchoMiddleware(zl *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// echo writes the error response here so the logged status is final
				c.Error(err)
			}

			userID, _ := c.Get(UserIDKey).(string)
			if userID == "" {
				userID = "anonymous"
			}
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			txn := newrelic.FromContext(c.Request().Context())
			if txn != nil {
				txn.AddAttribute("user_id", userID)
				txn.AddAttribute("request_id", requestID)
				if err != nil {
					txn.NoticeError(err)
				}
			}

			zl.LogRequest(txn, RequestLog{
				Method:    c.Request().Method,
				Path:      c.Request().URL.Path,
				ClientIP:  c.RealIP(),
				UserID:    userID,
				RequestID: requestID,
				Status:    c.Response().Status,
				Latency:   time.Since(start),
				Err:       err,
			})
			return nil
		}
	}
}
