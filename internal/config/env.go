package config

import (
	"os"
	"strconv"
)

// Environment variables, kept compatible with the original recorder's
// I965_BLACKBOX_* names. Invalid numeric values are ignored and the previous
// value kept.

// FromEnv overlays I965_BLACKBOX_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("I965_BLACKBOX_FILENAME"); v != "" {
		cfg.FilenamePrefix = v
	}
	if v := os.Getenv("I965_BLACKBOX_MAX_FILESIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.MaxFileSizeBytes = n
		}
	}
	if v := os.Getenv("I965_BLACKBOX_MAX_SUBMISSIONS_PERFILE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxSubmissionsPerFile = n
		}
	}
	if v := os.Getenv("I965_BLACKBOX_NUM_MOST_RECENT_KEEP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetainedFiles = n
		}
	}
	if v := os.Getenv("I965_BLACKBOX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("I965_BLACKBOX_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
