package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	Symbol      string `env:"SYMBOL" envDefault:"BTCUSDT"`
	Interval    string `env:"INTERVAL" envDefault:"1h"`
	CandleCount int    `env:"CANDLE_COUNT" envDefault:"250"`

	RSIPeriod      int `env:"RSI_PERIOD" envDefault:"14"`
	ShortRSIPeriod int `env:"SHORT_RSI_PERIOD" envDefault:"7"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds

	BinanceBaseURL   string `env:"BINANCE_BASE_URL" envDefault:"https://api.binance.com"`
	FearGreedBaseURL string `env:"FEAR_GREED_BASE_URL" envDefault:"https://api.alternative.me"`

	StreamMaxRetries int `env:"STREAM_MAX_RETRIES" envDefault:"10"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:"-"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"-"`
	DBName     string `env:"DB_NAME" envDefault:"pulse"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.Symbol = getEnvWithDefault("SYMBOL", "BTCUSDT")
	cfg.Interval = getEnvWithDefault("INTERVAL", "1h")
	cfg.CandleCount = getEnvIntWithDefault("CANDLE_COUNT", 250)

	cfg.RSIPeriod = getEnvIntWithDefault("RSI_PERIOD", 14)
	cfg.ShortRSIPeriod = getEnvIntWithDefault("SHORT_RSI_PERIOD", 7)

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	cfg.BinanceBaseURL = getEnvWithDefault("BINANCE_BASE_URL", "https://api.binance.com")
	cfg.FearGreedBaseURL = getEnvWithDefault("FEAR_GREED_BASE_URL", "https://api.alternative.me")

	cfg.StreamMaxRetries = getEnvIntWithDefault("STREAM_MAX_RETRIES", 10)

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "pulse")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSL_MODE", "disable")

	return &cfg, nil
}

// getEnvWithDefault returns the environment variable value or a default
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntWithDefault returns the environment variable as int or a default
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer value, using default")
	}
	return defaultValue
}

// getEnvInt64WithDefault returns the environment variable as int64 or a default
func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer value, using default")
	}
	return defaultValue
}
