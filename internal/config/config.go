// Package config loads runtime settings from an optional YAML file and the
// environment. Every key has a default, so a bare process starts with the
// in-memory backend and no advisor credential.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env  string
		Shop string
	} `mapstructure:"app"`

	HTTP struct {
		Addr           string
		AllowedOrigins string `mapstructure:"allowed_origins"`
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Storage struct {
		Backend string
		Dir     string
	} `mapstructure:"storage"`

	Postgres struct {
		DSN     string
		Migrate bool
	} `mapstructure:"postgres"`

	S3 struct {
		Endpoint  string
		Region    string
		Bucket    string
		Prefix    string
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"s3"`

	Advisor struct {
		APIKey          string        `mapstructure:"api_key"`
		Model           string        `mapstructure:"model"`
		BaseURL         string        `mapstructure:"base_url"`
		Timeout         time.Duration `mapstructure:"timeout"`
		MaxOutputTokens int64         `mapstructure:"max_output_tokens"`
	} `mapstructure:"advisor"`

	Dashboard struct {
		TopN int `mapstructure:"top_n"`
	} `mapstructure:"dashboard"`
}

// Storage backends accepted in storage.backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.shop", "ChocoNati")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.dir", "data")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.migrate", true)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.model", "gpt-4o-mini")
	v.SetDefault("advisor.base_url", "")
	v.SetDefault("advisor.timeout", 30*time.Second)
	v.SetDefault("advisor.max_output_tokens", 1024)
	v.SetDefault("dashboard.top_n", 5)
}

// Load reads path if it is non-empty, then applies CHOCONATI_* environment
// overrides (storage.backend becomes CHOCONATI_STORAGE_BACKEND).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CHOCONATI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}

	if c.Advisor.APIKey == "" {
		c.Advisor.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Storage.Backend == BackendPostgres && c.Postgres.DSN == "" {
		c.Postgres.DSN = os.Getenv("DATABASE_URL")
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile:
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("config: storage.backend=postgres needs postgres.dsn or DATABASE_URL")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return errors.New("config: storage.backend=s3 needs s3.bucket")
		}
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Advisor.Timeout <= 0 {
		return errors.New("config: advisor.timeout must be positive")
	}
	return nil
}
