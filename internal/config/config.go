package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	GeminiAPIKey string     `env:"GEMINI_API_KEY"`
	GeminiModel  string     `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	WindowWidth  int        `env:"WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int        `env:"WINDOW_HEIGHT" envDefault:"720"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
