package usecase

import (
	"time"

	"github.com/piresc/estamp/internal/pkg/jwt"
	"github.com/piresc/estamp/internal/pkg/mailer"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/internal/pkg/password"
	"github.com/piresc/estamp/internal/utils"
	"github.com/piresc/estamp/services/auth"
)

// AuthUC implements the auth use case interface
type AuthUC struct {
	userRepo auth.UserRepo
	otpRepo  auth.OTPRepo
	hasher   password.Hasher
	tokens   *jwt.Manager
	mailer   mailer.Mailer
	otpTTL   time.Duration

	now          func() time.Time
	generateCode func() (string, error)
}

// Option configures an AuthUC
type Option func(*AuthUC)

// WithClock overrides the time source used for OTP expiry
func WithClock(now func() time.Time) Option {
	return func(uc *AuthUC) {
		uc.now = now
	}
}

// WithCodeGenerator overrides how one-time codes are produced
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(uc *AuthUC) {
		uc.generateCode = gen
	}
}

// NewAuthUC creates a new auth use case
func NewAuthUC(
	userRepo auth.UserRepo,
	otpRepo auth.OTPRepo,
	hasher password.Hasher,
	tokens *jwt.Manager,
	mail mailer.Mailer,
	cfg models.OTPConfig,
	opts ...Option,
) *AuthUC {
	uc := &AuthUC{
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		hasher:       hasher,
		tokens:       tokens,
		mailer:       mail,
		otpTTL:       cfg.TTL,
		now:          time.Now,
		generateCode: utils.GenerateOTP,
	}
	if uc.otpTTL <= 0 {
		uc.otpTTL = 5 * time.Minute
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
