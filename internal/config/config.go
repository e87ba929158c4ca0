// Package config loads console settings.
//
// Settings are resolved in layers, each overriding the previous one:
// built-in defaults, the YAML config file, variables from a .env file,
// GREENLINE_* environment variables, and finally command-line flags
// (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/roach88/greenline/internal/activity"
	"github.com/roach88/greenline/internal/kv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GREENLINE_"

// DefaultEnvFile is read when present; a missing default file is not an error.
const DefaultEnvFile = ".env"

// Config holds every console setting.
type Config struct {
	Backend          string `yaml:"backend" env:"BACKEND" validate:"oneof=sqlite redis memory"`
	Database         string `yaml:"database" env:"DB" validate:"required_if=Backend sqlite"`
	Redis            Redis  `yaml:"redis" envPrefix:"REDIS_"`
	ActivityCapacity int    `yaml:"activity_capacity" env:"ACTIVITY_CAPACITY" validate:"gte=1"`
	Locale           string `yaml:"locale" env:"LOCALE" validate:"required"`
}

// Redis holds the settings of the Redis backend.
type Redis struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB" validate:"gte=0"`
	Prefix   string `yaml:"prefix" env:"PREFIX"`
}

// Default returns the built-in settings: a local SQLite file, an activity
// log of ten records and English collation.
func Default() Config {
	return Config{
		Backend:          kv.BackendSQLite,
		Database:         "greenline.db",
		Redis:            Redis{Addr: "localhost:6379", Prefix: kv.DefaultRedisPrefix},
		ActivityCapacity: activity.DefaultCapacity,
		Locale:           "en",
	}
}

// LoadOptions names the files Load reads. Empty fields use the defaults.
type LoadOptions struct {
	// ConfigFile is a YAML file. It is optional; when set it must exist.
	ConfigFile string

	// EnvFile is a dotenv file. When empty, DefaultEnvFile is tried.
	EnvFile string
}

// Load resolves the configuration from defaults, files and environment.
// Variables already present in the process environment win over those in
// the .env file.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", opts.ConfigFile, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if opts.EnvFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s=%v fails %q", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	return nil
}

// Language parses Locale.
func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid config: locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// StoreOptions converts the backend settings for kv.Open.
func (c Config) StoreOptions() kv.Options {
	return kv.Options{
		Backend:       c.Backend,
		Path:          c.Database,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
		RedisPrefix:   c.Redis.Prefix,
	}
}
