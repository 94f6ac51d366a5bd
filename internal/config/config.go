package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort       string
	StorageBackend string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	OperatorWorkers int
	EditLockWindow  time.Duration
	SeedAccounts    []string
	LogLevel        string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		HTTPPort:         "9446",
		StorageBackend:   StorageMemory,
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		OperatorWorkers:  1,
		SeedAccounts:     []string{"cash", "bank", "wallet"},
		LogLevel:         "info",
	}

	setString(&env.HTTPPort, "HTTP_PORT")
	setString(&env.StorageBackend, "STORAGE_BACKEND")
	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("OPERATOR_WORKERS"); len(v) != 0 {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_WORKERS: %w", err)
		}
		env.OperatorWorkers = workers
	}

	if v := os.Getenv("EDIT_LOCK_WINDOW"); len(v) != 0 {
		window, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("EDIT_LOCK_WINDOW: %w", err)
		}
		env.EditLockWindow = window
	}

	if v, ok := os.LookupEnv("SEED_ACCOUNTS"); ok {
		env.SeedAccounts = splitList(v)
	}

	env.StorageBackend = strings.ToLower(env.StorageBackend)

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Config) Validate() error {
	if c.StorageBackend != StorageMemory && c.StorageBackend != StoragePostgres {
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, c.StorageBackend)
	}
	if c.OperatorWorkers < 1 {
		return fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", c.OperatorWorkers)
	}
	if c.EditLockWindow < 0 {
		return fmt.Errorf("EDIT_LOCK_WINDOW must not be negative, got %s", c.EditLockWindow)
	}
	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		return fmt.Errorf("HTTP_PORT: %w", err)
	}
	return nil
}

func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); len(v) != 0 {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
