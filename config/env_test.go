package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AppEnv:            "production",
		DBDriver:          DriverPostgres,
		PasswordHasher:    "bcrypt",
		AccessSecret:      "access",
		RefreshSecret:     "refresh",
		AccessExpiry:      15 * time.Minute,
		RefreshExpiry:     7 * 24 * time.Hour,
		CaptchaSecret:     "captcha",
		AdminAPIKey:       "admin",
		RazorpayKeySecret: "rzp",
		PromoPercent:      10,
	}
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.CaptchaSecret = ""
	cfg.AdminAPIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAPTCHA_SECRET is required in production")
	assert.Contains(t, err.Error(), "ADMIN_API_KEY is required in production")
}

func TestValidateRejectsSharedJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.RefreshSecret = cfg.AccessSecret

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestValidateDevelopmentFallbacks(t *testing.T) {
	cfg := validConfig()
	cfg.AppEnv = "development"
	cfg.AccessSecret = ""
	cfg.RefreshSecret = ""
	cfg.CaptchaSecret = ""

	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.AccessSecret)
	assert.NotEqual(t, cfg.AccessSecret, cfg.RefreshSecret)
	assert.False(t, cfg.CaptchaEnabled())
}

func TestValidateRejectsUnknownOptions(t *testing.T) {
	cfg := validConfig()
	cfg.DBDriver = "sqlite"
	cfg.PasswordHasher = "md5"
	cfg.PromoPercent = 150

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "PASSWORD_HASHER")
	assert.Contains(t, err.Error(), "PROMO_PERCENT")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VERCEL", "1")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "Memory")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shop")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("RATE_LIMIT_LOGIN", "3")
	t.Setenv("FRONTEND_URL", "https://shop.example.com/")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.AccessExpiry)
	assert.Equal(t, 3, cfg.RateLimitLogin)
	assert.Equal(t, "https://shop.example.com", cfg.FrontendURL)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.TrustedProxies)
}

func TestLoadTrustsNoProxyByDefault(t *testing.T) {
	t.Setenv("VERCEL", "1")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestNewLoggerLevel(t *testing.T) {
	log := NewLogger(&Config{AppEnv: "production", LogLevel: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger(&Config{LogLevel: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
