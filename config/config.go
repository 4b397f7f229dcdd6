package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost       string
	HTTPPort       string
	MySQLDSN       string
	FrontendURL    string
	JWTSecret      string
	JWTTTL         time.Duration
	CookieTTL      time.Duration
	SMTP           SMTPConfig
	Twilio         TwilioConfig
	PasswordPolicy PasswordPolicy
	LogLevel       string
	LogFormat      string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Mail     string
	Password string
}

type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

type PasswordPolicy struct {
	MinLength      int
	RequireSpecial bool
}

var specialCharPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)

func (p PasswordPolicy) Validate(password string) error {
	if utf8.RuneCountInString(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	if p.RequireSpecial && !specialCharPattern.MatchString(password) {
		return errors.New("password must contain at least one special character")
	}

	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		HTTPHost:    getEnv("HTTP_HOST", ""),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MySQLDSN:    mysqlDSN,
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		JWTSecret:   jwtSecret,
		JWTTTL:      getDurationEnv("JWT_TTL", 7*24*time.Hour),
		CookieTTL:   time.Duration(getIntEnv("COOKIE_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "465"),
			Mail:     getEnv("SMTP_MAIL", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		},
		Twilio: TwilioConfig{
			AccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
			PhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		},
		PasswordPolicy: loadPasswordPolicy(),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func loadPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:      getIntEnv("PASSWORD_MIN_LENGTH", 8),
		RequireSpecial: getBoolEnv("PASSWORD_REQUIRE_SPECIAL", true),
	}
}
