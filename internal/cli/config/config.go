package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override
const EnvPrefix = "BCSCHEMA"

// Config represents the bcschema configuration
type Config struct {
	Metadata MetadataConfig `mapstructure:"metadata"`
	Policy   PolicyConfig   `mapstructure:"policy"`
	Schema   SchemaConfig   `mapstructure:"schema"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// MetadataConfig locates the metadata document
type MetadataConfig struct {
	Path string `mapstructure:"path"`
}

// PolicyConfig locates an optional policy override file
type PolicyConfig struct {
	Path string `mapstructure:"path"`
}

// SchemaConfig represents schema build configuration
type SchemaConfig struct {
	MaxDepth int `mapstructure:"max_depth" validate:"min=1"`
}

// CacheConfig represents snapshot cache configuration. A memory cache lives
// only as long as the process, so one-shot commands default to none.
type CacheConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=memory redis none"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
	Prefix  string        `mapstructure:"prefix"`
}

// RedisConfig represents Redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from path, or from bcschema.yaml in the working
// directory when path is empty. A missing bcschema.yaml is not an error.
// BCSCHEMA_* environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("metadata.path", "")
	v.SetDefault("policy.path", "")
	v.SetDefault("schema.max_depth", 16)
	v.SetDefault("cache.backend", "none")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.prefix", "bcschema:")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bcschema")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their config key
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		cfg := sl.Current().Interface().(Config)
		if cfg.Cache.Backend == "redis" && cfg.Redis.Addr == "" {
			sl.ReportError(cfg.Redis.Addr, "addr", "Addr", "required_for_redis", "")
		}
	}, Config{})

	return v
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid config: %w", err)
	}

	messages := make([]string, len(validationErrors))
	for i, e := range validationErrors {
		messages[i] = errorMessage(e)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

func errorMessage(e validator.FieldError) string {
	key := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, e.Param(), e.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", key, e.Param(), e.Value())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port, got %q", key, e.Value())
	case "required_for_redis":
		return "redis.addr is required when cache.backend is redis"
	default:
		return fmt.Sprintf("%s failed %s validation", key, e.Tag())
	}
}
