package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// RetryConfig содержит настройки повторных попыток генерации алиаса.
// Бюджет фиксированный, без backoff: при размере пространства 36^14
// коллизии практически невозможны, бюджет лишь ограничивает худшую задержку.
type RetryConfig struct {
	MaxAttempts int `env:"ALIAS_MAX_ATTEMPTS" envDefault:"5"`
}

// Config содержит всю конфигурацию приложения.
// Админский секрет — обычное поле конфигурации, передаётся явно,
// а не читается из глобального состояния.
type Config struct {
	ServerAddress   NetworkAddress `env:"SERVER_ADDRESS"`
	BaseURL         URLPrefix      `env:"BASE_URL"`
	DatabaseDSN     string         `env:"DATABASE_DSN"`
	FileStoragePath string         `env:"FILE_STORAGE_PATH"`
	AdminToken      string         `env:"ADMIN_TOKEN"`
	CodeLength      int            `env:"CODE_LENGTH" envDefault:"14"`
	Retry           RetryConfig
}

// Load загружает конфигурацию: сначала .env (если есть), затем переменные
// окружения, затем флаги командной строки (флаги имеют приоритет)
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddress: NetworkAddress{Host: "localhost", Port: 8080},
		BaseURL:       URLPrefix("http://localhost:8080"),
	}

	// .env опционален: отсутствие файла не является ошибкой
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	flag.Var(&cfg.ServerAddress, "a", "address to run HTTP server")
	flag.Var(&cfg.BaseURL, "b", "base URL for public tag links")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	flag.StringVar(&cfg.FileStoragePath, "f", cfg.FileStoragePath, "file storage path")
	flag.Parse()

	if cfg.CodeLength < 10 || cfg.CodeLength > 20 {
		return nil, fmt.Errorf("code length must be between 10 and 20, got %d", cfg.CodeLength)
	}

	if cfg.Retry.MaxAttempts <= 0 {
		return nil, fmt.Errorf("alias max attempts must be positive, got %d", cfg.Retry.MaxAttempts)
	}

	return cfg, nil
}
