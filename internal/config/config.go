package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/denizocal/dutyroster/pkg/core/model"
)

// Requirement defaults, substituted when a configured value is outside
// the valid range. A slot never needs more staff than it has positions.
const (
	DefaultReqWeekday       = 2
	DefaultReqFridayEvening = 2
	DefaultReqSaturday      = 2
	DefaultReqSunday        = 2

	minRequirement = 1
	maxRequirement = 2
)

// Requirements holds the per-slot headcounts from the config file.
// Values are pointers so "absent" and "zero" can be told apart.
type Requirements struct {
	Weekday       *int `yaml:"weekday,omitempty"`
	FridayEvening *int `yaml:"fridayEvening,omitempty"`
	Saturday      *int `yaml:"saturday,omitempty"`
	Sunday        *int `yaml:"sunday,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL   string       `yaml:"databaseURL" validate:"required"`
	OnLeaveStatus string       `yaml:"onLeaveStatus" validate:"required"`
	Requirements  Requirements `yaml:"requirements,omitempty"`

	RosterSheetID string `yaml:"rosterSheetID,omitempty"`
	RosterTab     string `yaml:"rosterTab,omitempty"`

	GmailUserID      string   `yaml:"gmailUserID,omitempty"`
	GmailSender      string   `yaml:"gmailSender,omitempty"`
	ReportRecipients []string `yaml:"reportRecipients,omitempty" validate:"omitempty,dive,email"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "dutyroster_config.test.yaml"
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Settings converts the configured requirements into engine settings.
// Out-of-range values are replaced by the documented defaults and
// surfaced as warnings on the logger; a bad requirement never aborts.
func (c *Config) Settings(logger *zap.Logger) model.Settings {
	return model.Settings{
		ReqWeekday:       normalizeRequirement(logger, "weekday", c.Requirements.Weekday, DefaultReqWeekday),
		ReqFridayEvening: normalizeRequirement(logger, "fridayEvening", c.Requirements.FridayEvening, DefaultReqFridayEvening),
		ReqSaturday:      normalizeRequirement(logger, "saturday", c.Requirements.Saturday, DefaultReqSaturday),
		ReqSunday:        normalizeRequirement(logger, "sunday", c.Requirements.Sunday, DefaultReqSunday),
		OnLeaveStatus:    c.OnLeaveStatus,
	}
}

func normalizeRequirement(logger *zap.Logger, name string, value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	if *value < minRequirement || *value > maxRequirement {
		logger.Warn("Requirement setting out of range, using default",
			zap.String("requirement", name),
			zap.Int("configured", *value),
			zap.Int("default", fallback))
		return fallback
	}
	return *value
}

// findConfigFile searches for dutyroster_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "dutyroster_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "dutyroster_config.yaml"
	if env != "" {
		configFileName = "dutyroster_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
