// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Import struct {
		TablePrefix string `mapstructure:"table_prefix"`
		Overwrite   bool   `mapstructure:"overwrite"`
	} `mapstructure:"import"`
	Watch struct {
		DebounceMs int `mapstructure:"debounce_ms"`
	} `mapstructure:"watch"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads the configuration from ~/.xlsq/config.yaml and environment
// variables (XLSQ_ prefix).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())

	// Defaults
	viper.SetDefault("import.table_prefix", "")
	viper.SetDefault("import.overwrite", false)
	viper.SetDefault("watch.debounce_ms", 500)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("output.color", true)

	// Environment variable overrides
	viper.SetEnvPrefix("XLSQ")
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir returns the configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xlsq"
	}
	return filepath.Join(home, ".xlsq")
}
