package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"shopsready"`
	DBPass string `envconfig:"DB_PASS" default:"password"`
	DBName string `envconfig:"DB_NAME" default:"shopsready"`

	NSQLookupd string `envconfig:"NSQ_LOOKUPD" default:"nsqlookupd:4161"`
	NSQDHost   string `envconfig:"NSQD_HOST" default:"nsqd:4150"`
	NSQDHTTP   string `envconfig:"NSQD_HTTP" default:"nsqd:4151"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	// Pipeline
	ChunkPageLimit        int   `envconfig:"CHUNK_PAGE_LIMIT" default:"10"`
	ChunkDelayMillis      int   `envconfig:"CHUNK_DELAY_MS" default:"1500"`
	ExtractTimeoutSeconds int   `envconfig:"EXTRACT_TIMEOUT_SECONDS" default:"120"`
	DailyRunLimit         int   `envconfig:"DAILY_RUN_LIMIT" default:"3"`
	MaxUploadSizeMB       int64 `envconfig:"MAX_UPLOAD_SIZE_MB" default:"50"`

	// Server
	ServerPort    int    `envconfig:"SERVER_PORT" default:"8081"`
	MigrationPath string `envconfig:"MIGRATION_PATH" default:"file://migrations"`

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Try loading .env from current dir and repo root
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	cwd, _ := os.Getwd()
	rootEnv := filepath.Join(cwd, "../.env")
	_ = godotenv.Load(rootEnv)

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingRequired)
	}
	if c.DBUser == "" {
		return fmt.Errorf("%w: DB_USER", ErrMissingRequired)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingRequired)
	}
	if c.ChunkPageLimit <= 0 {
		return fmt.Errorf("%w: CHUNK_PAGE_LIMIT", ErrMissingRequired)
	}
	if c.DailyRunLimit <= 0 {
		return fmt.Errorf("%w: DAILY_RUN_LIMIT", ErrMissingRequired)
	}
	return nil
}
