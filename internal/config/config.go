package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress            string        // Адрес и порт запуска сервиса
	DatabaseURI           string        // URI подключения к БД
	ReservationAPIAddress string        // Адрес удаленного сервиса бронирований, пусто значит локальная БД
	JWTSecret             string        // Секретный ключ для JWT
	JWTTokenTTL           time.Duration // Время жизни JWT токена
	LogLevel              string        // Уровень логирования

	// Worker Pool конфигурация
	WorkerPoolSize  int // Количество воркеров
	WorkerQueueSize int // Размер очереди бронирований на сохранение

	// Валидация
	MinPasswordLength int // Минимальная длина пароля

	// Ограничение запросов входа и регистрации с одного адреса
	AuthRateLimit float64 // Запросов в секунду
	AuthRateBurst int
}

const defaultJWTSecret = "default-secret-key-change-in-production"

func defaults() *Config {
	return &Config{
		JWTTokenTTL:       24 * time.Hour,
		LogLevel:          "info",
		WorkerPoolSize:    3,
		WorkerQueueSize:   100,
		MinPasswordLength: 6,
		AuthRateLimit:     5,
		AuthRateBurst:     10,
	}
}

// Load загружает конфигурацию из переменных окружения и флагов командной строки
func Load() (*Config, error) {
	return Parse(os.Args[0], os.Args[1:], os.LookupEnv)
}

// Parse разбирает флаги и переменные окружения.
// Приоритет: env переменные > флаги > дефолтные значения
func Parse(program string, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := defaults()

	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	fs.StringVar(&cfg.ReservationAPIAddress, "r", "", "reservation service address")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if v, ok := lookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = v
	}

	if v, ok := lookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = v
	}

	if v, ok := lookupEnv("RESERVATION_API_ADDRESS"); ok {
		cfg.ReservationAPIAddress = v
	}

	// JWT секрет только из env
	cfg.JWTSecret = defaultJWTSecret
	if v, ok := lookupEnv("JWT_SECRET"); ok && v != "" {
		cfg.JWTSecret = v
	}

	if v, ok := lookupEnv("JWT_TOKEN_TTL"); ok {
		if ttl, err := time.ParseDuration(v); err == nil && ttl > 0 {
			cfg.JWTTokenTTL = ttl
		}
	}

	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	cfg.WorkerPoolSize = positiveInt(lookupEnv, "WORKER_POOL_SIZE", cfg.WorkerPoolSize)
	cfg.WorkerQueueSize = positiveInt(lookupEnv, "WORKER_QUEUE_SIZE", cfg.WorkerQueueSize)
	cfg.MinPasswordLength = positiveInt(lookupEnv, "MIN_PASSWORD_LENGTH", cfg.MinPasswordLength)
	cfg.AuthRateBurst = positiveInt(lookupEnv, "AUTH_RATE_BURST", cfg.AuthRateBurst)

	if v, ok := lookupEnv("AUTH_RATE_LIMIT"); ok {
		if limit, err := strconv.ParseFloat(v, 64); err == nil && limit > 0 {
			cfg.AuthRateLimit = limit
		}
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
	}

	return cfg, nil
}

// positiveInt читает целое из env. Нечисловые и неположительные значения игнорируются.
func positiveInt(lookupEnv func(string) (string, bool), key string, fallback int) int {
	v, ok := lookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
