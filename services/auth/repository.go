package auth

import (
	"context"

	"github.com/piresc/estamp/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/estamp/services/auth UserRepo,OTPRepo

// UserRepo stores registered users. Lookups return (nil, nil) when the
// user does not exist.
type UserRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// OTPRepo stores one pending code per email. GetOTP returns (nil, nil)
// when no record exists.
type OTPRepo interface {
	SaveOTP(ctx context.Context, otp *models.OTP) error
	GetOTP(ctx context.Context, email string) (*models.OTP, error)
	DeleteOTP(ctx context.Context, email string) error
}
