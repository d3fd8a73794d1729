package config

import (
	"log"
	"strings"
	"time"

	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads configuration from the environment. When APP_ENV is local
// (the default) the dotenv file at configPath is read first.
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "local")

	if v.GetString("APP_ENV") == "local" && configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	setDefaults(v)
	return loadConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "estamp")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("JWT_ISSUER", "estamp")
	v.SetDefault("JWT_SESSION_TTL", "24h")
	v.SetDefault("JWT_RESET_TTL", "15m")

	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("OTP_RETENTION", "10m")
	v.SetDefault("OTP_RATE_LIMIT", 5)
	v.SetDefault("OTP_RATE_PERIOD", "15m")

	v.SetDefault("BOR_TIMEOUT", "15s")
	v.SetDefault("BOR_AUTH_TIMEOUT", "10s")

	v.SetDefault("MAIL_PROVIDER", "log")
	v.SetDefault("MAIL_SENDER", "E-Stamp <no-reply@estamp.local>")

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "uploads")
	v.SetDefault("STORAGE_PUBLIC_PREFIX", "/uploads")

	v.SetDefault("REPORT_TTL", "168h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")
	configs.JWT.SessionTTL = getDuration(v, "JWT_SESSION_TTL", 24*time.Hour)
	configs.JWT.ResetTTL = getDuration(v, "JWT_RESET_TTL", 15*time.Minute)

	configs.OTP.TTL = getDuration(v, "OTP_TTL", 5*time.Minute)
	configs.OTP.Retention = getDuration(v, "OTP_RETENTION", 10*time.Minute)
	configs.OTP.RateLimit = v.GetInt("OTP_RATE_LIMIT")
	configs.OTP.RatePeriod = getDuration(v, "OTP_RATE_PERIOD", 15*time.Minute)

	configs.BOR.BaseURL = strings.TrimRight(v.GetString("BOR_BASE_URL"), "/")
	configs.BOR.AuthURL = v.GetString("BOR_AUTH_URL")
	configs.BOR.ClientID = v.GetString("BOR_CLIENT_ID")
	configs.BOR.ClientSecret = v.GetString("BOR_CLIENT_SECRET")
	configs.BOR.Timeout = getDuration(v, "BOR_TIMEOUT", 15*time.Second)
	configs.BOR.AuthTimeout = getDuration(v, "BOR_AUTH_TIMEOUT", 10*time.Second)

	configs.Mail.Provider = strings.ToLower(v.GetString("MAIL_PROVIDER"))
	configs.Mail.APIKey = v.GetString("MAIL_API_KEY")
	configs.Mail.Sender = v.GetString("MAIL_SENDER")

	configs.Storage.Driver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	configs.Storage.LocalDir = v.GetString("STORAGE_LOCAL_DIR")
	configs.Storage.PublicPrefix = v.GetString("STORAGE_PUBLIC_PREFIX")
	configs.Storage.S3Bucket = v.GetString("S3_BUCKET")
	configs.Storage.S3Region = v.GetString("S3_REGION")
	configs.Storage.S3Endpoint = v.GetString("S3_ENDPOINT")
	configs.Storage.S3AccessKey = v.GetString("S3_ACCESS_KEY")
	configs.Storage.S3SecretKey = v.GetString("S3_SECRET_KEY")
	configs.Storage.S3PublicURL = strings.TrimRight(v.GetString("S3_PUBLIC_URL"), "/")

	configs.Report.TTL = getDuration(v, "REPORT_TTL", 7*24*time.Hour)
	configs.Report.ClientURL = strings.TrimRight(v.GetString("CLIENT_URL"), "/")

	configs.CORS.AllowOrigins = splitList(v.GetString("CORS_ORIGINS"))

	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return configs
}

// getDuration reads a Go duration string, falling back on parse failure
func getDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		log.Printf("invalid duration for %s, using %s", key, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
