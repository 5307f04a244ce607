package config

// Package config provides the loader for POS host configuration files
// and environment variables. It configures hosts only: the kernel core
// reads no files and no environment by contract.
//
// Version: v0.1.0

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"poskernel/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the unified configuration for a POS host process.
// It mirrors the structure of the YAML files under cmd/config.
type Config struct {
	Terminal struct {
		ID       string `mapstructure:"id" json:"id" yaml:"id"`
		Operator string `mapstructure:"operator" json:"operator" yaml:"operator"`
	} `mapstructure:"terminal" json:"terminal" yaml:"terminal"`

	Store struct {
		Name     string `mapstructure:"name" json:"name" yaml:"name"`
		Currency string `mapstructure:"currency" json:"currency" yaml:"currency"`
	} `mapstructure:"store" json:"store" yaml:"store"`

	Server struct {
		Addr string `mapstructure:"addr" json:"addr" yaml:"addr"`
	} `mapstructure:"server" json:"server" yaml:"server"`

	Logging struct {
		Level string `mapstructure:"level" json:"level" yaml:"level"`
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// defaults are applied before any file or environment override.
func defaults() {
	viper.SetDefault("terminal.id", "T01")
	viper.SetDefault("store.name", "Store-0001")
	viper.SetDefault("store.currency", "USD")
	viper.SetDefault("server.addr", ":8082")
	viper.SetDefault("logging.level", "info")
}

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is
// loaded. A missing default file is not an error; the built-in
// defaults apply.
func Load(env string) (*Config, error) {
	defaults()
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, utils.Wrap(err, "load config")
		}
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.SetEnvPrefix("POS")
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the POS_ENV environment
// variable to select the override file.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("POS_ENV", ""))
}

// YAML renders the effective configuration, used by `poskernel config
// show`.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, utils.Wrap(err, "render config")
	}
	return out, nil
}
