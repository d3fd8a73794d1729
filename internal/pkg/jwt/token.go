package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/piresc/estamp/internal/pkg/apperror"
	"github.com/piresc/estamp/internal/pkg/models"
)

// PurposePasswordReset marks a token that may only be used to set a new password
const PurposePasswordReset = "pwd_reset"

const (
	claimID      = "id"
	claimName    = "name"
	claimEmail   = "email"
	claimPurpose = "prp"
)

// Manager issues and verifies session and password-reset tokens with HS256
type Manager struct {
	secret     []byte
	issuer     string
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the time source used for issuing and validating tokens
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager from JWT configuration
func NewManager(cfg models.JWTConfig, opts ...Option) *Manager {
	m := &Manager{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		sessionTTL: cfg.SessionTTL,
		resetTTL:   cfg.ResetTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ResetTTL returns the lifetime of reset tokens
func (m *Manager) ResetTTL() time.Duration {
	return m.resetTTL
}

// IssueSession signs a general-purpose session token for identity
func (m *Manager) IssueSession(identity models.Identity) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		claimID:    identity.ID,
		claimName:  identity.Name,
		claimEmail: identity.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(m.sessionTTL).Unix(),
	}
	if m.issuer != "" {
		claims["iss"] = m.issuer
	}
	return m.sign(claims)
}

// IssueReset signs a password-reset token scoped to userID
func (m *Manager) IssueReset(userID string) (string, error) {
	now := m.now()
	return m.sign(jwt.MapClaims{
		"sub":        userID,
		claimPurpose: PurposePasswordReset,
		"iat":        now.Unix(),
		"exp":        now.Add(m.resetTTL).Unix(),
	})
}

// ParseSession verifies a session token and returns its identity.
// Reset tokens are rejected even though their signature is valid.
func (m *Manager) ParseSession(tokenString string) (models.Identity, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return models.Identity{}, apperror.Unauthorized("Unauthorized")
	}

	if _, scoped := claims[claimPurpose]; scoped {
		return models.Identity{}, apperror.Unauthorized("Unauthorized")
	}

	id, _ := claims[claimID].(string)
	if id == "" {
		return models.Identity{}, apperror.Unauthorized("Unauthorized")
	}
	name, _ := claims[claimName].(string)
	email, _ := claims[claimEmail].(string)

	return models.Identity{ID: id, Name: name, Email: email}, nil
}

// ParseReset verifies a reset token and returns the user id it grants.
// Expiry is reported separately from every other failure.
func (m *Manager) ParseReset(tokenString string) (string, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperror.Expired("Reset token expired")
		}
		return "", apperror.InvalidToken("Invalid reset token")
	}

	if purpose, _ := claims[claimPurpose].(string); purpose != PurposePasswordReset {
		return "", apperror.InvalidToken("Invalid reset token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", apperror.InvalidToken("Invalid reset token")
	}

	return sub, nil
}

func (m *Manager) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *Manager) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
