package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"
)

type Config struct {
	HTTPPort                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	RedisAddr                string
	KafkaBrokers             []string
	KafkaBookingCreatedTopic string
	BackendBaseURL           string
	BackendTimeout           time.Duration
	BackendRateLimit         float64
	JWTSecret                string
	LoginURL                 string
	DashboardPath            string
	WizardIdleTTL            time.Duration
	ParkedWizardTTL          time.Duration
	RedirectCountdownSeconds int
}

// ConfigFromEnv reads the configuration through getenv, applying defaults
// to the optional keys.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	var errList []error
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}
	duration := func(key, fallback string) time.Duration {
		d, err := time.ParseDuration(get(key, fallback))
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
		return d
	}

	cfg := Config{
		HTTPPort:                 get("HTTP_PORT", "8080"),
		DBHost:                   get("DB_HOST", "localhost"),
		DBPort:                   get("DB_PORT", "5432"),
		DBUser:                   get("DB_USER", ""),
		DBPassword:               get("DB_PASSWORD", ""),
		DBName:                   get("DB_NAME", ""),
		DBSslMode:                get("DB_SSLMODE", "disable"),
		RedisAddr:                get("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:             splitList(get("KAFKA_BROKERS", "")),
		KafkaBookingCreatedTopic: get("KAFKA_BOOKING_CREATED_TOPIC", "booking.created"),
		BackendBaseURL:           get("BACKEND_BASE_URL", ""),
		BackendTimeout:           duration("BACKEND_TIMEOUT", "10s"),
		JWTSecret:                get("JWT_SECRET", ""),
		LoginURL:                 get("LOGIN_URL", ""),
		DashboardPath:            get("DASHBOARD_PATH", "/dashboard"),
		WizardIdleTTL:            duration("WIZARD_IDLE_TTL", "24h"),
		ParkedWizardTTL:          duration("PARKED_WIZARD_TTL", "30m"),
	}

	rateLimit, err := strconv.ParseFloat(get("BACKEND_RATE_LIMIT", "0"), 64)
	if err != nil || rateLimit < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("BACKEND_RATE_LIMIT",
			fmt.Errorf("%q is not a non-negative number", getenv("BACKEND_RATE_LIMIT"))))
	}
	cfg.BackendRateLimit = rateLimit

	seconds, err := strconv.Atoi(get("REDIRECT_COUNTDOWN_SECONDS", strconv.Itoa(wizard.DefaultCountdownSeconds)))
	if err != nil || seconds <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("REDIRECT_COUNTDOWN_SECONDS",
			fmt.Errorf("%q is not a positive integer", getenv("REDIRECT_COUNTDOWN_SECONDS"))))
	}
	cfg.RedirectCountdownSeconds = seconds

	for key, value := range map[string]string{
		"DB_USER":          cfg.DBUser,
		"DB_NAME":          cfg.DBName,
		"BACKEND_BASE_URL": cfg.BackendBaseURL,
		"JWT_SECRET":       cfg.JWTSecret,
		"LOGIN_URL":        cfg.LoginURL,
	} {
		if value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(key))
		}
	}
	if len(cfg.KafkaBrokers) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("KAFKA_BROKERS"))
	}

	return cfg, errors.Join(errList...)
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
