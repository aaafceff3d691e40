package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"8080"`
	DatabaseURL  string `env:"DATABASE_URL,required"`
	RedisURL     string `env:"REDIS_URL,required"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ShareBaseURL string `env:"SHARE_BASE_URL" envDefault:""`
	StaticDir    string `env:"STATIC_DIR" envDefault:"static"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AIEnabled reports whether the external text-generation capability is
// configured. Resolved once at startup; absence silently selects the
// heuristic analysis path.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
