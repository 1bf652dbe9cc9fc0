package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	StoreName string

	DBDriver    string
	DatabaseURL string
	MongoURI    string
	MongoDB     string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration

	PasswordHasher string
	BcryptCost     int

	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	SMTPFrom         string
	AdminNotifyEmail string
	MailRatePerSec   float64
	FrontendURL      string

	RazorpayKeyID     string
	RazorpayKeySecret string

	CaptchaSecret    string
	CaptchaVerifyURL string
	CaptchaTimeout   time.Duration

	AdminAPIKey string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryURL       string
	MaxUploadSize       int64

	CORSOrigins []string

	// TrustedProxies lists the proxy addresses or CIDRs whose forwarded
	// headers are honored. Empty means the socket peer is the client.
	TrustedProxies []string

	PromoCode    string
	PromoPercent float64

	KafkaBrokers    []string
	KafkaOrderTopic string

	NotifyWorkers       int
	NotifyQueueSize     int
	NotifyRetrySchedule string
	NotifyMaxAttempts   int

	RateLimitSignup int
	RateLimitLogin  int
	RateLimitWindow time.Duration
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CaptchaEnabled is false only in non-production setups without a secret.
func (c *Config) CaptchaEnabled() bool {
	return c.CaptchaSecret != "" || c.IsProduction()
}

func (c *Config) CloudinaryConfigured() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func Load() (*Config, error) {
	if os.Getenv("VERCEL") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found, using system environment variables")
		}
	}

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", getEnv("PORT", "8080")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreName: getEnv("STORE_NAME", "Clothing Store"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL: buildDSN(),
		MongoURI:    getEnv("MONGO_URI", getEnv("MONGO_URL", "mongodb://localhost:27017")),
		MongoDB:     getEnv("MONGO_DB", "clothing_store"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AccessSecret:  getEnv("JWT_ACCESS_SECRET", getEnv("JWT_SECRET", "")),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
		AccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		RefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),

		PasswordHasher: strings.ToLower(getEnv("PASSWORD_HASHER", "bcrypt")),
		BcryptCost:     getInt("BCRYPT_COST", 12),

		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		SMTPFrom:         getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
		AdminNotifyEmail: os.Getenv("ADMIN_NOTIFY_EMAIL"),
		MailRatePerSec:   getFloat("MAIL_RATE_PER_SEC", 5),
		FrontendURL:      strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		CaptchaSecret:    os.Getenv("CAPTCHA_SECRET"),
		CaptchaVerifyURL: getEnv("CAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		CaptchaTimeout:   getDuration("CAPTCHA_TIMEOUT", 5*time.Second),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		MaxUploadSize:       int64(getInt("MAX_UPLOAD_SIZE", 5<<20)),

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),

		PromoCode:    getEnv("PROMO_CODE", "WELCOME10"),
		PromoPercent: getFloat("PROMO_PERCENT", 10),

		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic: getEnv("KAFKA_ORDER_TOPIC", "orders.placed"),

		NotifyWorkers:       getInt("NOTIFY_WORKERS", 2),
		NotifyQueueSize:     getInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyRetrySchedule: getEnv("NOTIFY_RETRY_SCHEDULE", "@every 5m"),
		NotifyMaxAttempts:   getInt("NOTIFY_MAX_ATTEMPTS", 5),

		RateLimitSignup: getInt("RATE_LIMIT_SIGNUP", 8),
		RateLimitLogin:  getInt("RATE_LIMIT_LOGIN", 15),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with. Secrets
// are mandatory in production; development falls back to fixed values.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of postgres, mongo, memory", c.DBDriver))
	}

	switch c.PasswordHasher {
	case "bcrypt", "argon2":
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_HASHER %q is not one of bcrypt, argon2", c.PasswordHasher))
	}

	if c.IsProduction() {
		required := map[string]string{
			"CAPTCHA_SECRET":      c.CaptchaSecret,
			"JWT_ACCESS_SECRET":   c.AccessSecret,
			"JWT_REFRESH_SECRET":  c.RefreshSecret,
			"ADMIN_API_KEY":       c.AdminAPIKey,
			"RAZORPAY_KEY_SECRET": c.RazorpayKeySecret,
		}
		for _, name := range []string{"CAPTCHA_SECRET", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET", "ADMIN_API_KEY", "RAZORPAY_KEY_SECRET"} {
			if required[name] == "" {
				errs = append(errs, fmt.Errorf("%s is required in production", name))
			}
		}
		if c.AccessSecret != "" && c.AccessSecret == c.RefreshSecret {
			errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ"))
		}
	} else {
		if c.AccessSecret == "" {
			c.AccessSecret = "dev-access-secret"
		}
		if c.RefreshSecret == "" {
			c.RefreshSecret = "dev-refresh-secret"
		}
	}

	if c.AccessExpiry <= 0 || c.RefreshExpiry <= 0 {
		errs = append(errs, errors.New("token expiries must be positive"))
	}
	if c.PromoPercent < 0 || c.PromoPercent > 100 {
		errs = append(errs, errors.New("PROMO_PERCENT must be between 0 and 100"))
	}

	return errors.Join(errs...)
}

func buildDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "clothing_store"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
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
