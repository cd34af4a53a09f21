// Package config loads the CLI settings from a config file, BA_* environment
// variables and defaults, then validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".bank-accounts"
	envPrefix  = "BA"

	DriverMemory = "memory"
	DriverTOML   = "toml"
	DriverSQLite = "sqlite"

	storageDriverKey = "storage.driver"
	storagePathKey   = "storage.path"
	logLevelKey      = "log.level"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory toml sqlite"`
	// Path is ignored by the memory driver.
	Path string `mapstructure:"path" validate:"required_unless=Driver memory"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads config.toml from ~/.bank-accounts when present. Values already
// set on v (flags, tests) win over the environment, which wins over the file.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(storageDriverKey, DriverTOML)
	v.SetDefault(logLevelKey, "warn")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString(storageDriverKey)),
			Path:   v.GetString(storagePathKey),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString(logLevelKey)),
		},
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath(baseDir, cfg.Storage.Driver)
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func defaultStoragePath(baseDir, driver string) string {
	switch driver {
	case DriverTOML:
		return filepath.Join(baseDir, "accounts.toml")
	case DriverSQLite:
		return filepath.Join(baseDir, "accounts.db")
	default:
		return ""
	}
}
