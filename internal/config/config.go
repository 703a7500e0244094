package config

import (
	"fmt"
	"strings"
	"time"

	"go-attendance/internal/shared/connection"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port     string
	AppEnv   string
	Location *time.Location

	DB             connection.DBConfig
	DBMaxRetries   int
	MigrationsPath string

	RedisAddr    string
	KafkaBroker  string
	KafkaGroupID string

	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int

	Leave LeaveConfig
	SMTP  SMTPConfig

	OutboxPollInterval time.Duration
}

type LeaveConfig struct {
	// BalanceGatedTypes are the leave types checked against and debited from the ledger.
	BalanceGatedTypes []string
	// DefaultTotals apply when an employee has no ledger row for a type.
	DefaultTotals map[string]decimal.Decimal
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	TLS      bool
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("TIMEZONE", "UTC")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "attendance")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("MIGRATIONS_PATH", "migrations")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_GROUP_ID", "go-attendance-notifier")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	v.SetDefault("LEAVE_BALANCE_GATED_TYPES", "annual,casual")
	v.SetDefault("LEAVE_DEFAULT_ANNUAL", "21")
	v.SetDefault("LEAVE_DEFAULT_SICK", "10")
	v.SetDefault("LEAVE_DEFAULT_CASUAL", "7")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "no-reply@attendance.local")
	v.SetDefault("SMTP_TLS", false)

	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")
}

// Load reads configuration from the environment, with a .env file as the
// lowest-priority source when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", v.GetString("TIMEZONE"), err)
	}

	leaveCfg, err := loadLeaveConfig(v)
	if err != nil {
		return nil, err
	}

	pollInterval, err := time.ParseDuration(v.GetString("OUTBOX_POLL_INTERVAL"))
	if err != nil || pollInterval <= 0 {
		pollInterval = 3 * time.Second
		zap.L().Warn("invalid OUTBOX_POLL_INTERVAL, using default", zap.Duration("default", pollInterval))
	}

	cfg := &Config{
		Port:     v.GetString("PORT"),
		AppEnv:   v.GetString("APP_ENV"),
		Location: loc,
		DB: connection.DBConfig{
			Host:     v.GetString("DB_HOST"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Port:     v.GetString("DB_PORT"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		DBMaxRetries:   v.GetInt("DB_MAX_RETRIES"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		KafkaBroker:    v.GetString("KAFKA_BROKER"),
		KafkaGroupID:   v.GetString("KAFKA_GROUP_ID"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		Leave:          leaveCfg,
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
			TLS:      v.GetBool("SMTP_TLS"),
		},
		OutboxPollInterval: pollInterval,
	}

	if cfg.DBMaxRetries <= 0 {
		cfg.DBMaxRetries = 1
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		zap.L().Warn("JWT_SECRET not set, authenticated routes will reject every token")
	}

	return cfg, nil
}

func loadLeaveConfig(v *viper.Viper) (LeaveConfig, error) {
	var gated []string
	for _, t := range strings.Split(v.GetString("LEAVE_BALANCE_GATED_TYPES"), ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			gated = append(gated, t)
		}
	}

	totals := make(map[string]decimal.Decimal, 3)
	for leaveType, key := range map[string]string{
		"annual": "LEAVE_DEFAULT_ANNUAL",
		"sick":   "LEAVE_DEFAULT_SICK",
		"casual": "LEAVE_DEFAULT_CASUAL",
	} {
		d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return LeaveConfig{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		if d.IsNegative() {
			return LeaveConfig{}, fmt.Errorf("%s must not be negative", key)
		}
		totals[leaveType] = d
	}

	return LeaveConfig{BalanceGatedTypes: gated, DefaultTotals: totals}, nil
}
