package config

import (
	"fmt"
	"os"

	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/utils"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills in optional fields that were left empty
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "alert-bot-parser"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Telegram.SessionFile == "" {
		c.Telegram.SessionFile = "session.json"
	}
	if c.Window.DaysBack == 0 {
		c.Window.DaysBack = utils.DefaultDaysBack
	}
	if c.Analysis.LowProcessingThreshold == 0 {
		c.Analysis.LowProcessingThreshold = utils.DefaultLowProcessingThreshold
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "output"
	}
	if c.Export.BaseFilename == "" {
		c.Export.BaseFilename = "pan_metrics"
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 30
	}
	if c.Network.MaxRetries == 0 {
		c.Network.MaxRetries = 3
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate Telegram configuration
	if c.Telegram.APIID == 0 {
		return fmt.Errorf("telegram api_id cannot be empty")
	}
	if c.Telegram.APIHash == "" {
		return fmt.Errorf("telegram api_hash cannot be empty")
	}
	if c.Telegram.GroupID == 0 {
		return fmt.Errorf("telegram group_id cannot be empty")
	}

	// Validate Window configuration
	if c.Window.DaysBack < 0 {
		return fmt.Errorf("window days_back cannot be negative: %d", c.Window.DaysBack)
	}

	// Validate Analysis configuration
	if c.Analysis.LowProcessingThreshold <= 0 {
		return fmt.Errorf("low processing threshold must be greater than 0: %d", c.Analysis.LowProcessingThreshold)
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.Network.Enabled && c.Network.Proxy == "" {
		return fmt.Errorf("proxy address cannot be empty when network proxying is enabled")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
