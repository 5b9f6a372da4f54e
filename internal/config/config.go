package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// LatencyOverrides tunes the view-to-start latency bucketing. Zero values
// fall back to the pipeline defaults (720-hour window, 24-hour buckets,
// 50-shift significance floor).
type LatencyOverrides struct {
	WindowHours      int `yaml:"windowHours,omitempty" validate:"omitempty,min=24"`
	BucketHours      int `yaml:"bucketHours,omitempty" validate:"omitempty,min=1"`
	SignificantTotal int `yaml:"significantTotal,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	DatasetPath string `yaml:"datasetPath" validate:"required"`

	// HolidayRules are RRULE strings naming recurring holiday dates for the
	// holiday comparison report.
	HolidayRules []string `yaml:"holidayRules,omitempty"`

	Latency LatencyOverrides `yaml:"latency,omitempty"`

	// DatabaseURL enables the Postgres report sink when set.
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	// ReportSheetID / ReportSheetTab name the spreadsheet tab the clean
	// cohort is published to.
	ReportSheetID  string `yaml:"reportSheetID,omitempty"`
	ReportSheetTab string `yaml:"reportSheetTab,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

const configFileName = "shift_analytics_config.yaml"

// Load loads and validates the configuration from shift_analytics_config.yaml,
// looking in the current directory first, then the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile("")
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads the configuration variant for an environment, e.g.
// env="test" resolves shift_analytics_config.test.yaml.
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

// Validate validates the configuration struct and checks holiday rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	if cfg.Latency.WindowHours > 0 && cfg.Latency.BucketHours > 0 &&
		cfg.Latency.WindowHours%cfg.Latency.BucketHours != 0 {
		return fmt.Errorf("latency windowHours must be a multiple of bucketHours")
	}

	if cfg.ReportSheetID != "" && cfg.ReportSheetTab == "" {
		return fmt.Errorf("reportSheetTab is required when reportSheetID is set")
	}

	return nil
}

// findConfigFile searches for the config file in the current directory and
// home directory. When env is non-empty the environment-suffixed variant is
// resolved instead.
func findConfigFile(env string) (string, error) {
	name := configFileName
	if env != "" {
		name = "shift_analytics_config." + env + ".yaml"
	}

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
