package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/estamp/internal/pkg/constants"
	"github.com/piresc/estamp/internal/pkg/database"
	"github.com/piresc/estamp/internal/pkg/models"
)

// OTPRepo keeps pending codes in redis. Keys outlive the code by the
// retention window so an expired read can still be recognised as expired.
type OTPRepo struct {
	redisClient *database.RedisClient
	retention   time.Duration
	now         func() time.Time
}

// NewOTPRepo creates a new OTP repository
func NewOTPRepo(redisClient *database.RedisClient, retention time.Duration) *OTPRepo {
	return &OTPRepo{
		redisClient: redisClient,
		retention:   retention,
		now:         time.Now,
	}
}

// SaveOTP stores otp, replacing any pending code for the same email
func (r *OTPRepo) SaveOTP(ctx context.Context, otp *models.OTP) error {
	ttl := otp.ExpiresAt.Sub(r.now()) + r.retention
	if ttl <= 0 {
		ttl = time.Second
	}

	key := fmt.Sprintf(constants.KeyUserOTP, otp.Email)
	if err := r.redisClient.PutJSON(ctx, key, otp, ttl); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	return nil
}

// GetOTP returns the pending code for email, or nil when none exists
func (r *OTPRepo) GetOTP(ctx context.Context, email string) (*models.OTP, error) {
	key := fmt.Sprintf(constants.KeyUserOTP, email)
	var otp models.OTP
	found, err := r.redisClient.GetJSON(ctx, key, &otp)
	if err != nil {
		return nil, fmt.Errorf("failed to get OTP: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &otp, nil
}

// DeleteOTP removes the pending code for email
func (r *OTPRepo) DeleteOTP(ctx context.Context, email string) error {
	key := fmt.Sprintf(constants.KeyUserOTP, email)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	return nil
}
