package config

import (
	"regintel/pkg/config"
)

// Scheduler holds briefing scheduler configuration.
type Scheduler struct {
	Enabled      bool   `mapstructure:"enabled"`
	BriefingCron string `mapstructure:"briefing_cron"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Auth      config.Auth     `mapstructure:"auth"`
	Telegram  config.Telegram `mapstructure:"telegram"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
