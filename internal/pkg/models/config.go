package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	OTP      OTPConfig
	BOR      BORConfig
	Mail     MailConfig
	Storage  StorageConfig
	Report   ReportConfig
	CORS     CORSConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout int // in seconds
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

// OTPConfig controls one-time code lifetime and request throttling
type OTPConfig struct {
	TTL        time.Duration
	Retention  time.Duration // how long an expired record survives in redis before eviction
	RateLimit  int
	RatePeriod time.Duration
}

// BORConfig contains Board of Revenue API credentials and endpoints
type BORConfig struct {
	BaseURL      string
	AuthURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	AuthTimeout  time.Duration
}

// MailConfig selects and configures the outbound email provider
type MailConfig struct {
	Provider string // "resend" or "log"
	APIKey   string
	Sender   string
}

// StorageConfig selects where generated report artifacts are written
type StorageConfig struct {
	Driver       string // "local" or "s3"
	LocalDir     string
	PublicPrefix string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3PublicURL  string
}

// ReportConfig controls generated report validity
type ReportConfig struct {
	TTL       time.Duration
	ClientURL string
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowOrigins []string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
