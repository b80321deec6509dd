package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"sp-app"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spapp"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	}

	TUI struct {
		UserEmail string `envconfig:"TUI_USER_EMAIL"`
	}

	OSS struct {
		Endpoint  string        `envconfig:"OSS_ENDPOINT"`
		AccessKey string        `envconfig:"OSS_ACCESS_KEY"`
		SecretKey string        `envconfig:"OSS_SECRET_KEY"`
		Bucket    string        `envconfig:"OSS_BUCKET"`
		URLTTL    time.Duration `envconfig:"OSS_URL_TTL" default:"1h"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// OSSConfigured reports whether object storage credentials are present.
// Without them the in-memory store is used, which only suits development.
func (c *Config) OSSConfigured() bool {
	return c.OSS.Endpoint != "" && c.OSS.AccessKey != "" && c.OSS.SecretKey != "" && c.OSS.Bucket != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
