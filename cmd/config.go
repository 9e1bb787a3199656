package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of Config.StorageDriver.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort       string
	RequestTimeout time.Duration
	LogLevel       string

	StorageDriver string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string

	OrderNumberAttempts int

	KafkaHost            string
	KafkaOrderReadyTopic string

	OutboxRelaySchedule string
	OutboxRelayBatch    int
}

// LoadConfig reads the configuration from the environment. Variables from a .env file
// in the working directory are loaded first when the file exists; variables already
// set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	requestTimeout, err := getEnvDuration("REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	attempts, err := getEnvInt("ORDER_NUMBER_ATTEMPTS", 5)
	if err != nil {
		return Config{}, err
	}
	relayBatch, err := getEnvInt("OUTBOX_RELAY_BATCH", 100)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		RequestTimeout:       requestTimeout,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		StorageDriver:        getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		DBDriver:             getEnv("DB_DRIVER", "pgx"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", ""),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBName:               getEnv("DB_NAME", ""),
		DBSslMode:            getEnv("DB_SSLMODE", "disable"),
		OrderNumberAttempts:  attempts,
		KafkaHost:            getEnv("KAFKA_HOST", ""),
		KafkaOrderReadyTopic: getEnv("KAFKA_ORDER_READY_TOPIC", "order.ready_for_pickup"),
		OutboxRelaySchedule:  getEnv("OUTBOX_RELAY_SCHEDULE", "*/5 * * * * *"),
		OutboxRelayBatch:     relayBatch,
	}
	return config, config.Validate()
}

// Validate checks the settings that cannot fall back to a default.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
		return nil
	case StorageDriverPostgres:
		if c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres storage driver")
		}
		return nil
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return intVal, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return duration, nil
}
