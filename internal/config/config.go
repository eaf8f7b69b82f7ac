// Package config loads the service configuration from INVENTORY_ prefixed
// environment variables, optionally seeded from a `.env` file.
//
// Keys map onto nested structs by their first underscore, so
// INVENTORY_DATABASE_ACCESS_KEY_ID becomes database.access_key_id.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const ENV_PREFIX = "INVENTORY_"

type Config struct {
	Primary       Primary             `koanf:"primary"`
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database" validate:"-"`
	Log           LogConfig           `koanf:"log"`
	Notifications NotificationsConfig `koanf:"notifications" validate:"-"`
}

type Primary struct {
	Env string `koanf:"env"`
}

// Timeouts are in seconds.
type ServerConfig struct {
	Port         string `koanf:"port"`
	ReadTimeout  int    `koanf:"read_timeout"`
	WriteTimeout int    `koanf:"write_timeout"`
	IdleTimeout  int    `koanf:"idle_timeout"`
}

// DatabaseConfig points at the document store. URL is the endpoint the
// client connects to and Name is the table holding the items.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required,url"`
	Name            string `koanf:"name" validate:"required"`
	Region          string `koanf:"region"`
	AccessKeyId     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key" validate:"required_with=AccessKeyId"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

type NotificationsConfig struct {
	TopicArn string `koanf:"topic_arn" validate:"required"`
}

func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}

func applyDefaults(cfg *Config) {
	if cfg.Primary.Env == "" {
		cfg.Primary.Env = "development"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 30
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Database.Region == "" {
		cfg.Database.Region = "us-east-1"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, ENV_PREFIX)), "_", ".", 1)
}

func load(sections ...func(*Config) interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(ENV_PREFIX, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	applyDefaults(cfg)
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	for _, section := range sections {
		if err := validate.Struct(section(cfg)); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfig reads, defaults and validates the configuration for the entry
// points serving items. A missing store URL or table name is an error.
func LoadConfig() (*Config, error) {
	return load(func(c *Config) interface{} { return c.Database })
}

// LoadStreamConfig is LoadConfig for the stream consumer. It never opens the
// table, so only the notification topic is required.
func LoadStreamConfig() (*Config, error) {
	return load(func(c *Config) interface{} { return c.Notifications })
}
