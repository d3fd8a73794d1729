package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	// Arrange
	t.Setenv("APP_ENV", "test")

	// Act
	cfg := InitConfig("")

	// Assert
	assert.Equal(t, "estamp", cfg.App.Name)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.ResetTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 10*time.Minute, cfg.OTP.Retention)
	assert.Equal(t, 15*time.Second, cfg.BOR.Timeout)
	assert.Equal(t, 10*time.Second, cfg.BOR.AuthTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Report.TTL)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "log", cfg.Mail.Provider)
}

func TestInitConfig_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv("APP_ENV", "production")
	t.Setenv("BOR_BASE_URL", "https://bor.example.gov/api/")
	t.Setenv("BOR_CLIENT_ID", "client")
	t.Setenv("JWT_SESSION_TTL", "2h")
	t.Setenv("OTP_TTL", "not-a-duration")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	// Act
	cfg := InitConfig("")

	// Assert
	assert.Equal(t, "https://bor.example.gov/api", cfg.BOR.BaseURL)
	assert.Equal(t, "client", cfg.BOR.ClientID)
	assert.Equal(t, 2*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowOrigins)
}

func TestInitConfig_LocalReadsDotenv(t *testing.T) {
	// Arrange
	t.Setenv("APP_ENV", "local")
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nREPORT_TTL=48h\nSTORAGE_DRIVER=S3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Act
	cfg := InitConfig(path)

	// Assert
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 48*time.Hour, cfg.Report.TTL)
	assert.Equal(t, "s3", cfg.Storage.Driver)
}
