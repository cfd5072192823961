package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=msaccount_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8085"
const defaultChannelID = "AccountApp"
const defaultCreditCardURL = "http://localhost:8087/creditcards/exists"
const defaultAlertTo = "soporte@tubanco.com"

type Config struct {
	HTTPAddr      string
	DatabaseDSN   string
	MigrationsDir string
	ChannelID     string
	// ChannelKeyHash is the bcrypt hash of the basic-auth channel key. Empty disables auth.
	ChannelKeyHash string

	VIPMinBalance        decimal.Decimal
	PYMEMinBalance       decimal.Decimal
	FreeTransactionLimit int

	CreditCardURL             string
	CreditCardTimeout         time.Duration
	CreditCardBreakerFailures uint32
	CreditCardBreakerCooldown time.Duration

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Enabled reports whether fallback alerts can be mailed.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

func Load() (Config, error) {
	// .env is optional; the process environment always wins.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:       getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseDSN:    normalizeConnectionString(getEnv("DATABASE_DSN", defaultConnectionString)),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		ChannelID:      getEnv("CHANNEL_ID", defaultChannelID),
		ChannelKeyHash: getEnv("CHANNEL_KEY_HASH", ""),
		CreditCardURL:  getEnv("CREDIT_CARD_URL", defaultCreditCardURL),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("ALERT_FROM", "msaccount@tubanco.com"),
			To:       getEnv("ALERT_TO", defaultAlertTo),
		},
	}

	var err error
	if cfg.VIPMinBalance, err = decimalEnv("VIP_MIN_BALANCE", "500"); err != nil {
		return Config{}, err
	}
	if cfg.PYMEMinBalance, err = decimalEnv("PYME_MIN_BALANCE", "1000"); err != nil {
		return Config{}, err
	}
	if cfg.FreeTransactionLimit, err = intEnv("FREE_TRANSACTION_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.CreditCardTimeout, err = durationEnv("CREDIT_CARD_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CreditCardBreakerCooldown, err = durationEnv("CREDIT_CARD_BREAKER_COOLDOWN", 30*time.Second); err != nil {
		return Config{}, err
	}
	failures, err := intEnv("CREDIT_CARD_BREAKER_FAILURES", 5)
	if err != nil {
		return Config{}, err
	}
	if failures <= 0 {
		return Config{}, fmt.Errorf("CREDIT_CARD_BREAKER_FAILURES must be greater than zero")
	}
	cfg.CreditCardBreakerFailures = uint32(failures)
	if cfg.SMTP.Port, err = intEnv("SMTP_PORT", 25); err != nil {
		return Config{}, err
	}

	if cfg.FreeTransactionLimit < 0 {
		return Config{}, fmt.Errorf("FREE_TRANSACTION_LIMIT cannot be negative")
	}
	if cfg.VIPMinBalance.IsNegative() || cfg.PYMEMinBalance.IsNegative() {
		return Config{}, fmt.Errorf("minimum balances cannot be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func decimalEnv(key, fallback string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be numeric: %w", key, err)
	}
	return value, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return value, nil
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
