// Package viperprovider implements configprovider.Loader over Viper, so
// program declarations can be overridden by environment variables while
// the file itself stays YAML.
package viperprovider

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Mounadi05/taskmaster/internal/domain/config"
)

// Loader loads and validates a Config snapshot from a YAML file, with any
// TASKMASTER_-prefixed environment variable overlaying matching keys.
type Loader struct{}

// New builds a Loader.
func New() *Loader {
	return &Loader{}
}

// Load implements configprovider.Loader.
func (l *Loader) Load(path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKMASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("taskmaster: reading config file: %w", err)
	}

	var dto rootDTO
	if err := v.Unmarshal(&dto); err != nil {
		return nil, fmt.Errorf("taskmaster: parsing config file: %w", err)
	}

	cfg := dto.toDomain(path)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("taskmaster: invalid config: %w", err)
	}
	return cfg, nil
}
