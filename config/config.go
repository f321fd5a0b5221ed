// Package config loads engine configuration. Every value has a default
// equal to the payroll contract constants, so running without a config
// file is the common case.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/warp/attendance-engine/attendance"
)

// Config is the application configuration.
type Config struct {
	Report ReportConfig `mapstructure:"report"`
	Rules  RulesConfig  `mapstructure:"rules"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// ReportConfig tunes export ingestion.
type ReportConfig struct {
	Sheet     string `mapstructure:"sheet"`      // empty = first sheet
	StartDate string `mapstructure:"start_date"` // optional cutoff, YYYY-MM-DD
}

// RulesConfig carries the payroll contract constants.
type RulesConfig struct {
	WorkdayStart             string  `mapstructure:"workday_start"` // HH:MM
	WorkdayEnd               string  `mapstructure:"workday_end"`   // HH:MM
	ValidityToleranceMinutes float64 `mapstructure:"validity_tolerance_minutes"`
	LateGraceMinutes         float64 `mapstructure:"late_grace_minutes"`
	OvertimeRatePerHour      int64   `mapstructure:"overtime_rate_per_hour"` // rupiah
	MinimumOvertimeHours     float64 `mapstructure:"minimum_overtime_hours"`
	BreakfastCutoff          string  `mapstructure:"breakfast_cutoff"` // HH:MM, strictly before
	DinnerEarliest           string  `mapstructure:"dinner_earliest"`  // HH:MM, at or after
	LunchMaxSeconds          float64 `mapstructure:"lunch_max_seconds"`
}

// OutputConfig controls where --out files land.
type OutputConfig struct {
	Folder string `mapstructure:"folder"`
}

// LogConfig controls logging. An empty file means console output.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file, or from an optional
// attendance.yaml in the working directory when path is empty. Missing
// files fall back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("report.sheet", "")
	v.SetDefault("report.start_date", "")
	v.SetDefault("rules.workday_start", "08:00")
	v.SetDefault("rules.workday_end", "17:00")
	v.SetDefault("rules.validity_tolerance_minutes", 31.0)
	v.SetDefault("rules.late_grace_minutes", 16.0)
	v.SetDefault("rules.overtime_rate_per_hour", 15000)
	v.SetDefault("rules.minimum_overtime_hours", 8.0)
	v.SetDefault("rules.breakfast_cutoff", "09:01")
	v.SetDefault("rules.dinner_earliest", "16:00")
	v.SetDefault("rules.lunch_max_seconds", 3660.0)
	v.SetDefault("output.folder", "outputs")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName("attendance")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	for field, value := range map[string]string{
		"rules.workday_start":    c.Rules.WorkdayStart,
		"rules.workday_end":      c.Rules.WorkdayEnd,
		"rules.breakfast_cutoff": c.Rules.BreakfastCutoff,
		"rules.dinner_earliest":  c.Rules.DinnerEarliest,
	} {
		if _, ok := attendance.ParseTimeOfDay(value); !ok {
			return fmt.Errorf("%s must be HH:MM, got %q", field, value)
		}
	}
	if c.Rules.ValidityToleranceMinutes <= 0 {
		return fmt.Errorf("rules.validity_tolerance_minutes must be positive")
	}
	if c.Rules.LateGraceMinutes <= 0 {
		return fmt.Errorf("rules.late_grace_minutes must be positive")
	}
	if c.Rules.OvertimeRatePerHour <= 0 {
		return fmt.Errorf("rules.overtime_rate_per_hour must be positive")
	}
	if c.Rules.MinimumOvertimeHours < 0 {
		return fmt.Errorf("rules.minimum_overtime_hours must not be negative")
	}
	if c.Rules.LunchMaxSeconds <= 0 {
		return fmt.Errorf("rules.lunch_max_seconds must be positive")
	}
	return nil
}

// Window returns the configured working window.
func (c *Config) Window() attendance.Window {
	start, _ := attendance.ParseTimeOfDay(c.Rules.WorkdayStart)
	end, _ := attendance.ParseTimeOfDay(c.Rules.WorkdayEnd)
	return attendance.Window{Start: start, End: end}
}

// BreakfastCutoff returns the configured breakfast cutoff.
func (c *Config) BreakfastCutoff() attendance.TimeOfDay {
	t, _ := attendance.ParseTimeOfDay(c.Rules.BreakfastCutoff)
	return t
}

// DinnerEarliest returns the configured dinner threshold.
func (c *Config) DinnerEarliest() attendance.TimeOfDay {
	t, _ := attendance.ParseTimeOfDay(c.Rules.DinnerEarliest)
	return t
}
