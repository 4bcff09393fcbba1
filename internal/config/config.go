package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"edakit/internal/eda"
	"edakit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Report  ReportConfig
	History HistoryConfig
	// RulesFile optionally points at a rules.yml overriding quality thresholds
	RulesFile string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	OutDir          string
	Title           string
	MaxHistColumns  int
	TopKCategories  int
	MinMissingShare float64
}

// HistoryConfig holds the optional analysis history store settings
type HistoryConfig struct {
	// Path to the sqlite database file; empty disables history
	Path string
}

// DefaultReportConfig returns the report defaults used by the CLI
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		OutDir:          "reports",
		Title:           "Dataset analysis",
		MaxHistColumns:  6,
		TopKCategories:  5,
		MinMissingShare: eda.DefaultMinMissingShare,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Report: ReportConfig{
			OutDir:          getEnvOrDefault("REPORT_OUT_DIR", "reports"),
			Title:           getEnvOrDefault("REPORT_TITLE", "Dataset analysis"),
			MaxHistColumns:  getEnvIntOrDefault("REPORT_MAX_HIST_COLUMNS", 6),
			TopKCategories:  getEnvIntOrDefault("REPORT_TOP_K_CATEGORIES", 5),
			MinMissingShare: getEnvFloatOrDefault("REPORT_MIN_MISSING_SHARE", eda.DefaultMinMissingShare),
		},
		History: HistoryConfig{
			Path: getEnvOrDefault("HISTORY_DB_PATH", ""),
		},
		RulesFile: getEnvOrDefault("RULES_FILE", ""),
	}

	if err := config.Report.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate rejects report options before they reach the engine
func (c ReportConfig) Validate() error {
	if c.TopKCategories < 0 {
		return errors.ConfigInvalid("top_k_categories must be >= 0")
	}
	if c.MaxHistColumns < 0 {
		return errors.ConfigInvalid("max_hist_columns must be >= 0")
	}
	if c.MinMissingShare < 0 || c.MinMissingShare > 1 {
		return errors.ConfigInvalid("min_missing_share must be within [0,1]")
	}
	return nil
}

// LoadRules reads quality thresholds from a yaml file, starting from the
// built-in defaults. An empty path returns the defaults unchanged.
func LoadRules(path string) (eda.RuleConfig, error) {
	rules := eda.DefaultRuleConfig()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, errors.Wrapf(errors.ConfigInvalid("rules file not readable"), "%s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, errors.Wrapf(errors.ConfigInvalid("rules file not parseable"), "%s: %v", path, err)
	}

	if err := validateRules(rules); err != nil {
		return eda.DefaultRuleConfig(), err
	}
	return rules, nil
}

func validateRules(rules eda.RuleConfig) error {
	if rules.MinRows < 0 || rules.MaxCols < 0 {
		return errors.ConfigInvalid("rule row/column thresholds must be >= 0")
	}
	for name, share := range map[string]float64{
		"max_missing_share":    rules.MaxMissingShare,
		"min_missing_share":    rules.MinMissingShare,
		"high_cardinality_pct": rules.HighCardinalityPct,
		"zero_share_threshold": rules.ZeroShareThreshold,
	} {
		if share < 0 || share > 1 {
			return errors.ConfigInvalid(name + " must be within [0,1]")
		}
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
