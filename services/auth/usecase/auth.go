package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/piresc/estamp/internal/pkg/apperror"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/mailer"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/internal/pkg/password"
	"github.com/piresc/estamp/internal/utils"
)

const (
	msgOTPNotFound     = "OTP not found. Please request again."
	msgOTPExpired      = "OTP expired. Please request again."
	msgOTPInvalid      = "Invalid OTP"
	msgUserExists      = "Email already registered"
	msgNoUser          = "User not found"
	msgPasswordTooLong = "Password must be at most 72 bytes"
)

// RequestOTP stages a signup and emails a verification code. The password
// is hashed before it is stored.
func (uc *AuthUC) RequestOTP(ctx context.Context, req *models.SignupRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	email := utils.NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return "", apperror.Validation("Name, email and password are required")
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", apperror.Internal("failed to look up user", err)
	}
	if existing != nil {
		return "", apperror.Conflict(msgUserExists)
	}

	hash, err := uc.hashPassword(req.Password)
	if err != nil {
		return "", err
	}

	code, err := uc.issueCode(ctx, &models.OTP{
		Email:               email,
		PendingName:         name,
		PendingPasswordHash: hash,
	})
	if err != nil {
		return "", err
	}

	if err := uc.mailer.Send(ctx, mailer.SignupOTP(email, name, code, uc.otpTTL)); err != nil {
		return "", apperror.Internal("failed to send signup OTP", err)
	}

	logger.InfoCtx(ctx, "Signup OTP sent", logger.Email("email", email))
	return email, nil
}

// VerifyOTP completes a staged signup and signs the new user in
func (uc *AuthUC) VerifyOTP(ctx context.Context, email, code string) (*models.AuthResponse, error) {
	email = utils.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, apperror.Validation("Email and OTP are required")
	}

	otp, err := uc.checkCode(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if otp.PendingPasswordHash == "" {
		// a reset code cannot complete a signup
		return nil, apperror.NotFound(msgOTPNotFound)
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("failed to look up user", err)
	}
	if existing != nil {
		uc.discardCode(ctx, email)
		return nil, apperror.Conflict(msgUserExists)
	}

	hash, err := password.Digest(uc.hasher, password.FromHash(otp.PendingPasswordHash))
	if err != nil {
		return nil, apperror.Internal("staged signup has no password", err)
	}

	user := &models.User{
		Name:         otp.PendingName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if apperror.KindOf(err) == apperror.KindConflict {
			uc.discardCode(ctx, email)
			return nil, err
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	uc.discardCode(ctx, email)

	token, err := uc.tokens.IssueSession(identityOf(user))
	if err != nil {
		return nil, apperror.Internal("failed to issue session token", err)
	}

	logger.InfoCtx(ctx, "User registered", logger.String("user_id", user.ID))
	return &models.AuthResponse{User: user.Public(), Token: token}, nil
}

// Login checks a password and issues a session token
func (uc *AuthUC) Login(ctx context.Context, email, plain string) (string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || plain == "" {
		return "", apperror.Validation("Email and password are required")
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", apperror.Internal("failed to look up user", err)
	}
	if user == nil {
		return "", apperror.NotFound(msgNoUser)
	}

	if err := uc.hasher.Verify(user.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", apperror.InvalidCredentials("Invalid credentials")
		}
		return "", apperror.Internal("failed to verify password", err)
	}

	token, err := uc.tokens.IssueSession(identityOf(user))
	if err != nil {
		return "", apperror.Internal("failed to issue session token", err)
	}
	return token, nil
}

// GetUser returns the caller's public profile
func (uc *AuthUC) GetUser(ctx context.Context, userID string) (*models.PublicUser, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, apperror.NotFound(msgNoUser)
	}

	public := user.Public()
	return &public, nil
}

// ForgotPassword emails a reset code to an existing user
func (uc *AuthUC) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return "", apperror.Validation("Email is required")
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", apperror.Internal("failed to look up user", err)
	}
	if user == nil {
		return "", apperror.NotFound(msgNoUser)
	}

	code, err := uc.issueCode(ctx, &models.OTP{Email: email})
	if err != nil {
		return "", err
	}

	if err := uc.mailer.Send(ctx, mailer.ResetOTP(email, user.Name, code, uc.otpTTL)); err != nil {
		return "", apperror.Internal("failed to send reset OTP", err)
	}

	logger.InfoCtx(ctx, "Password reset OTP sent", logger.String("user_id", user.ID))
	return email, nil
}

// VerifyResetOTP trades a valid reset code for a short-lived reset token.
// The code is single use.
func (uc *AuthUC) VerifyResetOTP(ctx context.Context, email, code string) (*models.ResetTokenResponse, error) {
	email = utils.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, apperror.Validation("Email and OTP are required")
	}

	if _, err := uc.checkCode(ctx, email, code); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("failed to look up user", err)
	}
	if user == nil {
		uc.discardCode(ctx, email)
		return nil, apperror.NotFound(msgNoUser)
	}

	resetToken, err := uc.tokens.IssueReset(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to issue reset token", err)
	}

	uc.discardCode(ctx, email)

	return &models.ResetTokenResponse{
		ResetToken: resetToken,
		ExpiresIn:  int64(uc.tokens.ResetTTL().Seconds()),
	}, nil
}

// SetNewPassword applies a new password for the subject of a reset token.
// Existing sessions stay valid.
func (uc *AuthUC) SetNewPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" || newPassword == "" {
		return apperror.Validation("Token and newPassword are required")
	}

	userID, err := uc.tokens.ParseReset(resetToken)
	if err != nil {
		return err
	}

	hash, err := uc.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return err
		}
		return apperror.Internal("failed to update password", err)
	}

	logger.InfoCtx(ctx, "Password updated", logger.String("user_id", userID))
	return nil
}

func (uc *AuthUC) hashPassword(plain string) (string, error) {
	hash, err := password.Digest(uc.hasher, password.Plain(plain))
	if errors.Is(err, password.ErrTooLong) {
		return "", apperror.Validation(msgPasswordTooLong)
	}
	if err != nil {
		return "", apperror.Internal("failed to hash password", err)
	}
	return hash, nil
}

// issueCode fills in a fresh code and expiry on otp and stores it,
// replacing any pending code for the email
func (uc *AuthUC) issueCode(ctx context.Context, otp *models.OTP) (string, error) {
	code, err := uc.generateCode()
	if err != nil {
		return "", apperror.Internal("failed to generate OTP", err)
	}

	now := uc.now()
	otp.Code = code
	otp.CreatedAt = now
	otp.ExpiresAt = now.Add(uc.otpTTL)

	if err := uc.otpRepo.SaveOTP(ctx, otp); err != nil {
		return "", apperror.Internal("failed to store OTP", err)
	}
	return code, nil
}

// checkCode loads the pending code for email and validates it. An expired
// record is purged; a wrong code leaves the record for another attempt.
func (uc *AuthUC) checkCode(ctx context.Context, email, code string) (*models.OTP, error) {
	otp, err := uc.otpRepo.GetOTP(ctx, email)
	if err != nil {
		return nil, apperror.Internal("failed to get OTP", err)
	}
	if otp == nil {
		return nil, apperror.NotFound(msgOTPNotFound)
	}

	if otp.Expired(uc.now()) {
		uc.discardCode(ctx, email)
		return nil, apperror.Expired(msgOTPExpired)
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		return nil, apperror.Invalid(msgOTPInvalid)
	}
	return otp, nil
}

func (uc *AuthUC) discardCode(ctx context.Context, email string) {
	if err := uc.otpRepo.DeleteOTP(ctx, email); err != nil {
		logger.WarnCtx(ctx, "Failed to delete OTP", logger.Email("email", email), logger.Err(err))
	}
}

func identityOf(user *models.User) models.Identity {
	return models.Identity{ID: user.ID, Name: user.Name, Email: user.Email}
}
