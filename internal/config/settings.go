package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CORPUS"

// Settings are the application settings shared by the CLI and the server.
// Plans are loaded separately with InputParser.
type Settings struct {
	LogLevel string         `mapstructure:"log_level" yaml:"log_level"`
	Format   string         `mapstructure:"format"    yaml:"format"`
	BaseYear int            `mapstructure:"base_year" yaml:"base_year"` // 0 means the current year
	Workers  int            `mapstructure:"workers"   yaml:"workers"`
	Server   ServerSettings `mapstructure:"server"    yaml:"server"`
}

// ServerSettings configures the HTTP front.
type ServerSettings struct {
	Addr            string `mapstructure:"addr"              yaml:"addr"`
	MaxBodyBytes    int    `mapstructure:"max_body_bytes"    yaml:"max_body_bytes"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec"  yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
}

// LoadSettings reads settings from the default search path (./config,
// ~/.corpus) and CORPUS_* environment variables. A missing file is fine.
func LoadSettings() (*Settings, error) {
	v := newViper()
	v.SetConfigName("corpus")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".corpus"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}
	return decodeSettings(v)
}

// LoadSettingsFromFile reads settings from an explicit file.
func LoadSettingsFromFile(path string) (*Settings, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
	}
	return decodeSettings(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("format", "console")
	v.SetDefault("base_year", 0)
	v.SetDefault("workers", 8)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.read_timeout_sec", 10)
	v.SetDefault("server.write_timeout_sec", 30)
}

func decodeSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Validate checks settings that have no sensible fallback.
func (s *Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if s.BaseYear < 0 {
		return fmt.Errorf("base_year cannot be negative")
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
