package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/estamp/internal/pkg/apperror"
	"github.com/piresc/estamp/internal/pkg/jwt"
	"github.com/piresc/estamp/internal/pkg/mailer"
	mailermocks "github.com/piresc/estamp/internal/pkg/mailer/mocks"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/internal/pkg/password"
	passwordmocks "github.com/piresc/estamp/internal/pkg/password/mocks"
	"github.com/piresc/estamp/services/auth/mocks"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type authTestDeps struct {
	userRepo *mocks.MockUserRepo
	otpRepo  *mocks.MockOTPRepo
	hasher   *passwordmocks.MockHasher
	mailer   *mailermocks.MockMailer
	tokens   *jwt.Manager
	now      time.Time
}

func setupAuthUC(t *testing.T) (*AuthUC, *authTestDeps) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deps := &authTestDeps{
		userRepo: mocks.NewMockUserRepo(ctrl),
		otpRepo:  mocks.NewMockOTPRepo(ctrl),
		hasher:   passwordmocks.NewMockHasher(ctrl),
		mailer:   mailermocks.NewMockMailer(ctrl),
		now:      fixedNow,
	}
	clock := func() time.Time { return deps.now }
	deps.tokens = jwt.NewManager(models.JWTConfig{
		Secret:     "test-secret",
		SessionTTL: 24 * time.Hour,
		ResetTTL:   15 * time.Minute,
	}, jwt.WithClock(clock))

	uc := NewAuthUC(deps.userRepo, deps.otpRepo, deps.hasher, deps.tokens, deps.mailer,
		models.OTPConfig{TTL: 5 * time.Minute},
		WithClock(clock),
		WithCodeGenerator(func() (string, error) { return "123456", nil }),
	)
	return uc, deps
}

func TestRequestOTP_Success(t *testing.T) {
	// Arrange
	uc, deps := setupAuthUC(t)
	ctx := context.Background()

	deps.userRepo.EXPECT().GetUserByEmail(ctx, "a@x.com").Return(nil, nil)
	deps.hasher.EXPECT().Hash("p1").Return("hashed-p1", nil)
	deps.otpRepo.EXPECT().SaveOTP(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, otp *models.OTP) error {
		assert.Equal(t, "a@x.com", otp.Email)
		assert.Equal(t, "123456", otp.Code)
		assert.Equal(t, "A", otp.PendingName)
		assert.Equal(t, "hashed-p1", otp.PendingPasswordHash)
		assert.Equal(t, fixedNow.Add(5*time.Minute), otp.ExpiresAt)
		return nil
	})
	deps.mailer.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		assert.Equal(t, "a@x.com", msg.To)
		assert.Equal(t, "Your OTP Code", msg.Subject)
		assert.Contains(t, msg.HTML, "123456")
		return nil
	})

	// Act
	email, err := uc.RequestOTP(ctx, &models.SignupRequest{Name: "A", Email: "  A@X.com ", Password: "p1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestRequestOTP_MissingFields(t *testing.T) {
	uc, _ := setupAuthUC(t)

	_, err := uc.RequestOTP(context.Background(), &models.SignupRequest{Name: "A", Email: "a@x.com"})

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.EqualError(t, err, "Name, email and password are required")
}

func TestRequestOTP_EmailTaken(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(&models.User{ID: "u1"}, nil)

	_, err := uc.RequestOTP(context.Background(), &models.SignupRequest{Name: "A", Email: "A@x.com", Password: "p1"})

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.EqualError(t, err, "Email already registered")
}

func TestRequestOTP_MailFailure(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(nil, nil)
	deps.hasher.EXPECT().Hash("p1").Return("h", nil)
	deps.otpRepo.EXPECT().SaveOTP(gomock.Any(), gomock.Any()).Return(nil)
	deps.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	_, err := uc.RequestOTP(context.Background(), &models.SignupRequest{Name: "A", Email: "a@x.com", Password: "p1"})

	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestRequestOTP_PasswordTooLong(t *testing.T) {
	// Arrange
	uc, deps := setupAuthUC(t)
	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(nil, nil)

	// Act
	_, err := uc.RequestOTP(context.Background(), &models.SignupRequest{
		Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 80),
	})

	// Assert
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.EqualError(t, err, "Password must be at most 72 bytes")
}

func TestRequestOTP_HashFailure(t *testing.T) {
	uc, deps := setupAuthUC(t)
	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(nil, nil)
	deps.hasher.EXPECT().Hash("p1").Return("", errors.New("bcrypt: cost out of range"))

	_, err := uc.RequestOTP(context.Background(), &models.SignupRequest{Name: "A", Email: "a@x.com", Password: "p1"})

	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.EqualError(t, err, "failed to hash password: bcrypt: cost out of range")
}

func pendingSignup(now time.Time) *models.OTP {
	return &models.OTP{
		Email:               "a@x.com",
		Code:                "123456",
		ExpiresAt:           now.Add(5 * time.Minute),
		PendingName:         "A",
		PendingPasswordHash: "hashed-p1",
	}
}

func TestVerifyOTP_Success(t *testing.T) {
	// Arrange
	uc, deps := setupAuthUC(t)
	ctx := context.Background()

	gomock.InOrder(
		deps.otpRepo.EXPECT().GetOTP(ctx, "a@x.com").Return(pendingSignup(fixedNow), nil),
		deps.userRepo.EXPECT().GetUserByEmail(ctx, "a@x.com").Return(nil, nil),
		deps.userRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
			assert.Equal(t, "A", u.Name)
			assert.Equal(t, "hashed-p1", u.PasswordHash)
			u.ID = "user-1"
			return nil
		}),
		deps.otpRepo.EXPECT().DeleteOTP(ctx, "a@x.com").Return(nil),
	)

	// Act
	result, err := uc.VerifyOTP(ctx, "A@x.com", "123456")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.PublicUser{ID: "user-1", Name: "A", Email: "a@x.com"}, result.User)

	identity, err := deps.tokens.ParseSession(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestVerifyOTP_NotFound(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(nil, nil)

	_, err := uc.VerifyOTP(context.Background(), "a@x.com", "123456")

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.EqualError(t, err, "OTP not found. Please request again.")
}

func TestVerifyOTP_ExpiredDeletesRecord(t *testing.T) {
	uc, deps := setupAuthUC(t)
	deps.now = fixedNow.Add(6 * time.Minute)

	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(pendingSignup(fixedNow), nil)
	deps.otpRepo.EXPECT().DeleteOTP(gomock.Any(), "a@x.com").Return(nil)

	_, err := uc.VerifyOTP(context.Background(), "a@x.com", "123456")

	assert.Equal(t, apperror.KindExpired, apperror.KindOf(err))
}

func TestVerifyOTP_WrongCodeKeepsRecord(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(pendingSignup(fixedNow), nil)
	deps.otpRepo.EXPECT().DeleteOTP(gomock.Any(), gomock.Any()).Times(0)

	_, err := uc.VerifyOTP(context.Background(), "a@x.com", "654321")

	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
	assert.EqualError(t, err, "Invalid OTP")
}

func TestVerifyOTP_UserRegisteredMeanwhile(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(pendingSignup(fixedNow), nil)
	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(&models.User{ID: "other"}, nil)
	deps.otpRepo.EXPECT().DeleteOTP(gomock.Any(), "a@x.com").Return(nil)

	_, err := uc.VerifyOTP(context.Background(), "a@x.com", "123456")

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestVerifyOTP_InsertRace(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(pendingSignup(fixedNow), nil)
	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(nil, nil)
	deps.userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(apperror.Conflict("Email already registered"))
	deps.otpRepo.EXPECT().DeleteOTP(gomock.Any(), "a@x.com").Return(nil)

	_, err := uc.VerifyOTP(context.Background(), "a@x.com", "123456")

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestVerifyOTP_ResetCodeCannotSignUp(t *testing.T) {
	uc, deps := setupAuthUC(t)

	resetOTP := &models.OTP{Email: "a@x.com", Code: "123456", ExpiresAt: fixedNow.Add(time.Minute)}
	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(resetOTP, nil)

	_, err := uc.VerifyOTP(context.Background(), "a@x.com", "123456")

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestLogin(t *testing.T) {
	user := &models.User{ID: "user-1", Name: "A", Email: "a@x.com", PasswordHash: "hashed-p1"}

	testCases := []struct {
		name         string
		setup        func(d *authTestDeps)
		password     string
		expectedKind apperror.Kind
		expectErr    bool
	}{
		{
			name: "Success",
			setup: func(d *authTestDeps) {
				d.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(user, nil)
				d.hasher.EXPECT().Verify("hashed-p1", "p1").Return(nil)
			},
			password: "p1",
		},
		{
			name: "Unknown user",
			setup: func(d *authTestDeps) {
				d.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(nil, nil)
			},
			password:     "p1",
			expectedKind: apperror.KindNotFound,
			expectErr:    true,
		},
		{
			name: "Wrong password",
			setup: func(d *authTestDeps) {
				d.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(user, nil)
				d.hasher.EXPECT().Verify("hashed-p1", "bad").Return(password.ErrMismatch)
			},
			password:     "bad",
			expectedKind: apperror.KindInvalidCredentials,
			expectErr:    true,
		},
		{
			name:         "Missing password",
			setup:        func(d *authTestDeps) {},
			password:     "",
			expectedKind: apperror.KindValidation,
			expectErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, deps := setupAuthUC(t)
			tc.setup(deps)

			token, err := uc.Login(context.Background(), "A@X.COM", tc.password)

			if tc.expectErr {
				assert.Equal(t, tc.expectedKind, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			identity, err := deps.tokens.ParseSession(token)
			require.NoError(t, err)
			assert.Equal(t, "user-1", identity.ID)
		})
	}
}

func TestGetUser(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.userRepo.EXPECT().GetUserByID(gomock.Any(), "user-1").
		Return(&models.User{ID: "user-1", Name: "A", Email: "a@x.com", PasswordHash: "secret"}, nil)

	user, err := uc.GetUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, &models.PublicUser{ID: "user-1", Name: "A", Email: "a@x.com"}, user)
}

func TestGetUser_Errors(t *testing.T) {
	uc, deps := setupAuthUC(t)

	_, err := uc.GetUser(context.Background(), "")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	deps.userRepo.EXPECT().GetUserByID(gomock.Any(), "gone").Return(nil, nil)
	_, err = uc.GetUser(context.Background(), "gone")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestForgotPassword(t *testing.T) {
	uc, deps := setupAuthUC(t)
	ctx := context.Background()

	deps.userRepo.EXPECT().GetUserByEmail(ctx, "a@x.com").Return(&models.User{ID: "user-1", Name: "A"}, nil)
	deps.otpRepo.EXPECT().SaveOTP(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, otp *models.OTP) error {
		assert.Equal(t, "123456", otp.Code)
		assert.Empty(t, otp.PendingPasswordHash)
		return nil
	})
	deps.mailer.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		assert.Equal(t, "Reset Your Password", msg.Subject)
		return nil
	})

	email, err := uc.ForgotPassword(ctx, " a@x.com")

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestForgotPassword_UnknownUser(t *testing.T) {
	uc, deps := setupAuthUC(t)

	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(nil, nil)

	_, err := uc.ForgotPassword(context.Background(), "a@x.com")

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.EqualError(t, err, "User not found")
}

func TestVerifyResetOTP_Success(t *testing.T) {
	uc, deps := setupAuthUC(t)

	resetOTP := &models.OTP{Email: "a@x.com", Code: "123456", ExpiresAt: fixedNow.Add(5 * time.Minute)}
	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(resetOTP, nil)
	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(&models.User{ID: "user-1"}, nil)
	deps.otpRepo.EXPECT().DeleteOTP(gomock.Any(), "a@x.com").Return(nil)

	result, err := uc.VerifyResetOTP(context.Background(), " A@X.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, int64(900), result.ExpiresIn)

	userID, err := deps.tokens.ParseReset(result.ResetToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// a reset token is not a session
	_, err = deps.tokens.ParseSession(result.ResetToken)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestVerifyResetOTP_UserGone(t *testing.T) {
	uc, deps := setupAuthUC(t)

	resetOTP := &models.OTP{Email: "a@x.com", Code: "123456", ExpiresAt: fixedNow.Add(5 * time.Minute)}
	deps.otpRepo.EXPECT().GetOTP(gomock.Any(), "a@x.com").Return(resetOTP, nil)
	deps.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "a@x.com").Return(nil, nil)
	deps.otpRepo.EXPECT().DeleteOTP(gomock.Any(), "a@x.com").Return(nil)

	_, err := uc.VerifyResetOTP(context.Background(), "a@x.com", "123456")

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSetNewPassword(t *testing.T) {
	uc, deps := setupAuthUC(t)

	resetToken, err := deps.tokens.IssueReset("user-1")
	require.NoError(t, err)

	deps.hasher.EXPECT().Hash("p2").Return("hashed-p2", nil)
	deps.userRepo.EXPECT().UpdatePassword(gomock.Any(), "user-1", "hashed-p2").Return(nil)

	assert.NoError(t, uc.SetNewPassword(context.Background(), resetToken, "p2"))
}

func TestSetNewPassword_Rejections(t *testing.T) {
	uc, deps := setupAuthUC(t)

	sessionToken, err := deps.tokens.IssueSession(models.Identity{ID: "user-1"})
	require.NoError(t, err)
	expiredToken, err := deps.tokens.IssueReset("user-1")
	require.NoError(t, err)
	otherKey := jwt.NewManager(models.JWTConfig{Secret: "other", ResetTTL: time.Minute})
	forged, err := otherKey.IssueReset("user-1")
	require.NoError(t, err)

	testCases := []struct {
		name         string
		token        string
		password     string
		advance      time.Duration
		expectedKind apperror.Kind
	}{
		{"Missing fields", "", "p2", 0, apperror.KindValidation},
		{"Session token has wrong purpose", sessionToken, "p2", 0, apperror.KindInvalidToken},
		{"Bad signature", forged, "p2", 0, apperror.KindInvalidToken},
		{"Garbage", "not.a.jwt", "p2", 0, apperror.KindInvalidToken},
		{"Expired", expiredToken, "p2", 16 * time.Minute, apperror.KindExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps.now = fixedNow.Add(tc.advance)
			defer func() { deps.now = fixedNow }()

			err := uc.SetNewPassword(context.Background(), tc.token, tc.password)

			assert.Equal(t, tc.expectedKind, apperror.KindOf(err))
		})
	}
}

func TestSetNewPassword_PasswordTooLong(t *testing.T) {
	// Arrange
	uc, deps := setupAuthUC(t)
	resetToken, err := deps.tokens.IssueReset("user-1")
	require.NoError(t, err)

	// Act
	err = uc.SetNewPassword(context.Background(), resetToken, strings.Repeat("p", 73))

	// Assert
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.EqualError(t, err, "Password must be at most 72 bytes")
}

func TestSetNewPassword_UserGone(t *testing.T) {
	uc, deps := setupAuthUC(t)

	resetToken, err := deps.tokens.IssueReset("user-1")
	require.NoError(t, err)

	deps.hasher.EXPECT().Hash("p2").Return("hashed-p2", nil)
	deps.userRepo.EXPECT().UpdatePassword(gomock.Any(), "user-1", "hashed-p2").Return(apperror.NotFound("User not found"))

	err = uc.SetNewPassword(context.Background(), resetToken, "p2")

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
