package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Config is the process configuration, read from the environment and an
// optional .env file.
type Config struct {
	BackendURL         string
	BackendTimeout     time.Duration
	SessionStore       string
	SessionDBPath      string
	TelegramToken      string
	AdminChatID        int64
	GeminiAPIKey       string
	GeminiModel        string
	RevalidateSchedule string
	LogMode            string
	LogFile            string
}

// Load reads the configuration.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{
		BackendURL:         strings.TrimSpace(os.Getenv("BACKEND_URL")),
		SessionStore:       "sqlite",
		SessionDBPath:      "data/session.db",
		TelegramToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        os.Getenv("GEMINI_MODEL"),
		RevalidateSchedule: "@every 15m",
		LogMode:            "development",
		LogFile:            os.Getenv("LOG_FILE"),
	}

	if store := os.Getenv("SESSION_STORE"); store != "" {
		config.SessionStore = strings.ToLower(store)
	}
	if dbPath := os.Getenv("SESSION_DB_PATH"); dbPath != "" {
		config.SessionDBPath = dbPath
	}
	if schedule, ok := os.LookupEnv("REVALIDATE_SCHEDULE"); ok {
		config.RevalidateSchedule = strings.TrimSpace(schedule)
	}
	if mode := os.Getenv("LOG_MODE"); mode != "" {
		config.LogMode = mode
	}

	if raw := os.Getenv("BACKEND_TIMEOUT"); raw != "" {
		timeout, err := cast.ToDurationE(raw)
		if err != nil || timeout < 0 {
			return nil, errors.Errorf("BACKEND_TIMEOUT has an invalid duration %q", raw)
		}
		config.BackendTimeout = timeout
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		id, err := cast.ToInt64E(raw)
		if err != nil {
			return nil, errors.Wrap(err, "ADMIN_CHAT_ID has an invalid format")
		}
		config.AdminChatID = id
	}

	if config.BackendURL == "" {
		return nil, errors.New("BACKEND_URL environment variable is empty")
	}
	if config.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN environment variable is empty")
	}

	return config, nil
}
