package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"glbiashara_backend/internal/media"
	"glbiashara_backend/internal/storage"
	"glbiashara_backend/internal/validator"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port" validate:"min=1,max=65535"`
		Env         string   `yaml:"env" validate:"oneof=development production test"`
		CORSOrigins []string `yaml:"cors_origins" validate:"dive,eq=*|http_url"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver" validate:"oneof=postgres mysql"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" validate:"required"`
		TTLMinutes int    `yaml:"ttl_minutes" validate:"min=1"`
	} `yaml:"jwt"`

	Storage struct {
		Provider      string `yaml:"provider" validate:"oneof=cloudinary s3 r2 local"`
		Namespace     string `yaml:"namespace" validate:"required"`
		CloudinaryURL string `yaml:"cloudinary_url"`
		Bucket        string `yaml:"bucket" validate:"required_if=Provider s3,required_if=Provider r2"`
		Region        string `yaml:"region"`
		Endpoint      string `yaml:"endpoint" validate:"required_if=Provider r2"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		BaseURL       string `yaml:"base_url"`
		BasePath      string `yaml:"base_path"`
		ImageQuality  int    `yaml:"image_quality" validate:"min=1,max=100"`
	} `yaml:"storage"`

	// Seed creates this account on start-up when both fields are set.
	Seed struct {
		Email    string `yaml:"email" validate:"omitempty,email"`
		Password string `yaml:"password"`
	} `yaml:"seed"`

	Upload struct {
		Timeout time.Duration `yaml:"timeout" validate:"min=1s"`
	} `yaml:"upload"`
}

// Defaults returns the configuration used before the file and environment
// are applied.
func Defaults() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Database.Driver = "postgres"
	cfg.JWT.TTLMinutes = 60 * 24
	cfg.Storage.Provider = "cloudinary"
	cfg.Storage.Namespace = media.DefaultNamespace
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.ImageQuality = 85
	cfg.Upload.Timeout = 30 * time.Second
	return &cfg
}

// Load reads CONFIG_PATH (default config/config.yaml) when it exists, then
// applies environment overrides and validates the result.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	return LoadFrom(path, os.Getenv)
}

// LoadFrom is Load with an explicit file and environment source. A missing
// file is not an error.
func LoadFrom(path string, getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		default:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.Server.CORSOrigins = cleanList(cfg.Server.CORSOrigins)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	str("SERVER_ENV", &c.Server.Env)
	str("DATABASE_URL", &c.Database.DSN)
	str("DATABASE_DRIVER", &c.Database.Driver)
	str("JWT_SECRET", &c.JWT.Secret)
	str("STORAGE_PROVIDER", &c.Storage.Provider)
	str("CLOUDINARY_URL", &c.Storage.CloudinaryURL)
	str("S3_BUCKET", &c.Storage.Bucket)
	str("S3_REGION", &c.Storage.Region)
	str("S3_ENDPOINT", &c.Storage.Endpoint)
	str("S3_ACCESS_KEY", &c.Storage.AccessKey)
	str("S3_SECRET_KEY", &c.Storage.SecretKey)
	str("STORAGE_BASE_URL", &c.Storage.BaseURL)
	str("STORAGE_BASE_PATH", &c.Storage.BasePath)
	str("MEDIA_NAMESPACE", &c.Storage.Namespace)
	str("FIRST_USER_EMAIL", &c.Seed.Email)
	str("FIRST_USER_PASSWORD", &c.Seed.Password)

	if v := getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := getenv("UPLOAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_TIMEOUT %q: %w", v, err)
		}
		c.Upload.Timeout = d
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	return nil
}

// cleanList trims every entry and drops empty ones.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks the struct rules.
func (c *Config) Validate() error {
	return validator.New().Validate(c)
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// JWTTTL is the token lifetime.
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWT.TTLMinutes) * time.Minute
}

// StorageConfig maps the storage section onto storage.Config.
func (c *Config) StorageConfig() storage.Config {
	s := c.Storage
	return storage.Config{
		Provider:      s.Provider,
		CloudinaryURL: s.CloudinaryURL,
		BasePath:      s.BasePath,
		BaseURL:       s.BaseURL,
		Bucket:        s.Bucket,
		Region:        s.Region,
		AccessKey:     s.AccessKey,
		SecretKey:     s.SecretKey,
		Endpoint:      s.Endpoint,
		ImageQuality:  s.ImageQuality,
	}
}
