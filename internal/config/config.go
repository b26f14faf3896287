// Package config loads the roster daemon's settings from a config file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/celerix-dev/celerix-roster/internal/api"
	"github.com/celerix-dev/celerix-roster/internal/service"
	"github.com/celerix-dev/celerix-roster/pkg/schema"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ROSTER_HTTP_ADDR.
const EnvPrefix = "ROSTER"

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
	Users   UsersConfig   `mapstructure:"users"`
	Routing RoutingConfig `mapstructure:"routing"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type UsersConfig struct {
	// EmptyPolicy is "reject" or "allow".
	EmptyPolicy string `mapstructure:"empty_policy"`
	// EmptyStatus is "internal" (500) or "not_found" (404) for a rejected empty roster.
	EmptyStatus string `mapstructure:"empty_status"`
	// Validation is "none" or "strict".
	Validation string `mapstructure:"validation"`
	// AssignIDs makes the store replace a zero id with the next free one.
	AssignIDs bool `mapstructure:"assign_ids"`
}

type RoutingConfig struct {
	// MethodMismatch is "not_found" or "method_not_allowed".
	MethodMismatch string `mapstructure:"method_mismatch"`
}

type CORSConfig struct {
	// AllowedOrigins accepts "*" or http(s) origins. From the environment the
	// list may be comma or space separated.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SeedConfig struct {
	Users []schema.User `mapstructure:"users"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":3000")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "development")
	v.SetDefault("log.file", "")
	v.SetDefault("users.empty_policy", string(service.EmptyUsersReject))
	v.SetDefault("users.empty_status", string(api.ErrInternal))
	v.SetDefault("users.validation", string(service.ValidationNone))
	v.SetDefault("users.assign_ids", false)
	v.SetDefault("routing.method_mismatch", string(api.MismatchNotFound))
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("seed.users", []map[string]any{
		{"id": 1, "name": "Alice", "role": "admin"},
		{"id": 2, "name": "Bob", "role": "user"},
	})
}

// Load reads path (or ./config.yaml when path is empty and the file exists),
// applies ROSTER_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown policy values.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	if _, err := c.EmptyUsersPolicy(); err != nil {
		return err
	}
	if _, err := c.EmptyUsersStatus(); err != nil {
		return err
	}
	if _, err := service.NewValidator(c.Users.Validation); err != nil {
		return err
	}
	if _, err := c.MethodMismatch(); err != nil {
		return err
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	return nil
}

// splitOrigins breaks comma separated entries apart and drops blanks.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	if strings.Contains(origin, "*") {
		return fmt.Errorf("cors origin %q: wildcards are only allowed as \"*\"", origin)
	}
	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return fmt.Errorf("cors origin %q: must start with http:// or https://", origin)
	}
	return nil
}

func (c *Config) EmptyUsersPolicy() (service.EmptyUsersPolicy, error) {
	return service.ParseEmptyUsersPolicy(c.Users.EmptyPolicy)
}

func (c *Config) EmptyUsersStatus() (api.ErrorKind, error) {
	return api.ParseEmptyUsersStatus(c.Users.EmptyStatus)
}

func (c *Config) MethodMismatch() (api.MethodMismatch, error) {
	return api.ParseMethodMismatch(c.Routing.MethodMismatch)
}
