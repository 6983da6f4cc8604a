package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN           string        `mapstructure:"DB_DSN"`
	Environment     string        `mapstructure:"ENV"`
	SweepInterval   time.Duration `mapstructure:"SWEEP_INTERVAL"`
	CancelLeadHours int           `mapstructure:"CANCEL_LEAD_HOURS"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		DBDSN:       os.Getenv("DB_DSN"),
		Environment: os.Getenv("ENV"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.SweepInterval = 15 * time.Minute
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse SWEEP_INTERVAL: %w", err)
		}
		cfg.SweepInterval = interval
	}

	cfg.CancelLeadHours = 24
	if raw := os.Getenv("CANCEL_LEAD_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse CANCEL_LEAD_HOURS: %w", err)
		}
		cfg.CancelLeadHours = hours
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// CancelLead возвращает минимальный срок до начала занятия, за который
// клиент ещё может его отменить.
func (c *Config) CancelLead() time.Duration {
	return time.Duration(c.CancelLeadHours) * time.Hour
}
