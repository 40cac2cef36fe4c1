package main

import (
	"fmt"
	"os"
	"strings"
)

// envConfig captures autarad's runtime settings, mirroring
// services/lending's LoadConfigFromEnv/Validate/Sanitized shape: plain
// environment variables with sane defaults rather than a YAML/TOML file,
// since the inspector itself has no persistent state of its own beyond
// the paths it is pointed at.
type envConfig struct {
	MarketAccountPath string
	GlobalConfigPath  string
	LogFormat         string
}

const (
	envMarketAccountPath = "AUTARAD_MARKET_ACCOUNT_PATH"
	envGlobalConfigPath  = "AUTARAD_GLOBAL_CONFIG_PATH"
	envLogFormat         = "AUTARAD_LOG_FORMAT"

	defaultLogFormat = "text"
)

// loadConfigFromEnv constructs an envConfig from environment variables and
// defaults.
func loadConfigFromEnv() envConfig {
	return envConfig{
		MarketAccountPath: stringFromEnv(envMarketAccountPath, ""),
		GlobalConfigPath:  stringFromEnv(envGlobalConfigPath, ""),
		LogFormat:         stringFromEnv(envLogFormat, defaultLogFormat),
	}
}

// Validate ensures the configuration is usable before autarad attempts to
// read anything from disk.
func (cfg envConfig) Validate() error {
	if strings.TrimSpace(cfg.MarketAccountPath) == "" {
		return fmt.Errorf("%s is required", envMarketAccountPath)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("%s must be \"text\" or \"json\", got %q", envLogFormat, cfg.LogFormat)
	}
	return nil
}

// Sanitized returns a copy of the config safe to log. autarad carries no
// secrets today, but the method is kept so callers never need to
// special-case "does this config have anything sensitive" as fields are
// added later.
func (cfg envConfig) Sanitized() envConfig {
	return cfg
}

func stringFromEnv(key, fallback string) string {
	trimmed := strings.TrimSpace(os.Getenv(key))
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
