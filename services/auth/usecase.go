package auth

import (
	"context"

	"github.com/piresc/estamp/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/estamp/services/auth AuthUC

// AuthUC drives OTP-gated signup, login and password reset
type AuthUC interface {
	RequestOTP(ctx context.Context, req *models.SignupRequest) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, userID string) (*models.PublicUser, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyResetOTP(ctx context.Context, email, code string) (*models.ResetTokenResponse, error)
	SetNewPassword(ctx context.Context, resetToken, newPassword string) error
}
