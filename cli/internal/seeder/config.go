package seeder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config controls a seeding run.
type Config struct {
	Version  string   `mapstructure:"version" yaml:"version"`
	Defaults Defaults `mapstructure:"defaults" yaml:"defaults"`

	// Scenarios overrides the built-in scenario set when non-empty.
	Scenarios []string `mapstructure:"scenarios" yaml:"scenarios"`
}

type Defaults struct {
	ServerURL string        `mapstructure:"server_url" yaml:"server_url"`
	Count     int           `mapstructure:"count" yaml:"count"`
	Interval  time.Duration `mapstructure:"interval" yaml:"interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Defaults: Defaults{
			ServerURL: "http://localhost:8000",
			Count:     10,
			Interval:  500 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration with cascade: flags > ./seed.yaml >
// ~/.cargoctl/seed.yaml > defaults.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("seed")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SEED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cargoctl"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1")
	v.SetDefault("defaults.server_url", "http://localhost:8000")
	v.SetDefault("defaults.count", 10)
	v.SetDefault("defaults.interval", 500*time.Millisecond)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Defaults.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.Defaults.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", c.Defaults.Count)
	}
	if c.Defaults.Interval < 0 {
		return fmt.Errorf("interval must not be negative")
	}
	for _, name := range c.Scenarios {
		if _, ok := scenarios[name]; !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
	}
	return nil
}
