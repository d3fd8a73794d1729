package middleware

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/internal/utils"
)

// IdentityKey is the echo context key holding the authenticated models.Identity
const IdentityKey = "identity"

// SessionParser verifies a session token and returns the caller it names
type SessionParser interface {
	ParseSession(token string) (models.Identity, error)
}

// SessionAuth rejects requests without a valid bearer session token and
// attaches the decoded identity to the echo context
func SessionAuth(parser SessionParser) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: IdentityKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return parser.ParseSession(auth)
		},
		SuccessHandler: func(c echo.Context) {
			identity, ok := c.Get(IdentityKey).(models.Identity)
			if !ok {
				return
			}
			c.Set(logger.UserIDKey, identity.ID)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return utils.UnauthorizedResponse(c, "")
		},
	})
}

// IdentityFrom returns the identity attached by SessionAuth
func IdentityFrom(c echo.Context) (models.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(models.Identity)
	if !ok || identity.ID == "" {
		return models.Identity{}, false
	}
	return identity, true
}
