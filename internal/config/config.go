// Package config loads the process-wide configuration once at startup. The
// resulting Config is immutable: nothing reads the environment after Load.
package config

import (
	"errors"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	BotToken string `env:"BOT_TOKEN"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" env-default:"gpt-3.5-turbo"`

	PostgresDSN string `env:"POSTGRES_DSN"`

	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	DailyMessageLimit int `env:"DAILY_MESSAGE_LIMIT" env-default:"10"`
	UserCacheTTLHours int `env:"USER_CACHE_TTL_HOURS" env-default:"24"`
}

// ErrMissingBotToken makes a missing bot token fatal at startup.
var ErrMissingBotToken = errors.New("BOT_TOKEN is not set")

// Load seeds the environment from the given file (if present) and reads the
// configuration from environment variables.
func Load(envFilePath string) (*Config, error) {
	if err := LoadEnvFile(envFilePath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.BotToken == "" {
		return nil, ErrMissingBotToken
	}
	return &cfg, nil
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
