package models

import (
	"time"
)

// OTP is a pending one-time code for an email. Signup records carry the
// staged name and password hash; reset records carry only the code.
type OTP struct {
	Email               string    `json:"email"`
	Code                string    `json:"code"`
	ExpiresAt           time.Time `json:"expires_at"`
	PendingName         string    `json:"pending_name,omitempty"`
	PendingPasswordHash string    `json:"pending_password_hash,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// Expired reports whether the code is past its expiry at now
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// SignupRequest starts OTP-gated registration
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest carries an email and the code sent to it
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// LoginRequest represents a request to login with email and password
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest sets a new password using a reset token
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// AuthResponse is returned after a successful signup verification
type AuthResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

// ResetTokenResponse is returned after a reset code has been verified
type ResetTokenResponse struct {
	ResetToken string `json:"resetToken"`
	ExpiresIn  int64  `json:"expiresIn"`
}
