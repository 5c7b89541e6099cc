package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPracticumEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollSchedule      = "@every 10m"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultSendRateInterval  = time.Second
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken   string
	TelegramToken    string
	TelegramChatID   string // validated by ChatID
	Endpoint         string
	PollSchedule     string        // cron spec or descriptor, e.g. "@every 10m"
	LookbackPeriod   time.Duration // initial cursor is now minus this
	HTTPTimeout      time.Duration
	SendRateInterval time.Duration
	DatabaseURL      string // optional, enables the notification journal
	LogLevel         string
	Environment      string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing credentials are not an error here; see CheckTokens.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
	var err error

	cfg.Endpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultPracticumEndpoint
	}

	cfg.PollSchedule = os.Getenv("POLL_SCHEDULE")
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = DefaultPollSchedule // 600 seconds between checks
	}

	if cfg.LookbackPeriod, err = durationEnv("LOOKBACK_PERIOD", 0); err != nil {
		return nil, err
	}
	if cfg.LookbackPeriod < 0 {
		return nil, fmt.Errorf("LOOKBACK_PERIOD must not be negative")
	}
	if cfg.HTTPTimeout, err = durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.SendRateInterval, err = durationEnv("SEND_RATE_INTERVAL", DefaultSendRateInterval); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

// CheckTokens reports whether all three credentials are present. Every missing
// variable is logged at fatal level; the caller decides to stop, nothing exits here.
func (c *AppConfig) CheckTokens(log logrus.FieldLogger) bool {
	log.Debug("Checking required environment variables")
	required := []struct {
		name  string
		value string
	}{
		{"PRACTICUM_TOKEN", c.PracticumToken},
		{"TELEGRAM_TOKEN", c.TelegramToken},
		{"TELEGRAM_CHAT_ID", c.TelegramChatID},
	}

	ok := true
	for _, r := range required {
		if r.value == "" {
			log.WithField("variable", r.name).
				Log(logrus.FatalLevel, "Required environment variable is missing, the bot will not start")
			ok = false
		}
	}
	if ok {
		log.Debug("All required environment variables are present")
	}
	return ok
}

// ChatID validates TELEGRAM_CHAT_ID and returns it unchanged. Telegram takes
// either a numeric id (negative for groups) or a public @username.
func (c *AppConfig) ChatID() (string, error) {
	id := c.TelegramChatID
	if strings.HasPrefix(id, "@") && len(id) > 1 && !strings.ContainsAny(id, " \t") {
		return id, nil
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return "", fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: expected a numeric id or @username", id)
	}
	return id, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
