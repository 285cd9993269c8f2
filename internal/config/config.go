package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the resolved recorder configuration handed to the trace session.
type Config struct {
	// FilenamePrefix prefixes every trace file; files are named
	// <prefix>.<sequence>.
	FilenamePrefix string `json:"filenamePrefix" yaml:"filenamePrefix"`
	// MaxFileSizeBytes rotates the current file once it grows past this
	// size. 0 means unlimited.
	MaxFileSizeBytes int64 `json:"maxFileSizeBytes" yaml:"maxFileSizeBytes"`
	// MaxSubmissionsPerFile rotates after this many submissions per file.
	// 0 means unlimited. Ignored in retention mode.
	MaxSubmissionsPerFile int `json:"maxSubmissionsPerFile" yaml:"maxSubmissionsPerFile"`
	// MaxRetainedFiles, when positive, keeps only the N most recent
	// per-submission files (hang triage mode).
	MaxRetainedFiles int    `json:"maxRetainedFiles" yaml:"maxRetainedFiles"`
	LogLevel         string `json:"logLevel" yaml:"logLevel"`
	LogFormat        string `json:"logFormat" yaml:"logFormat"`
}

// Default returns built-in defaults matching the original recorder: a 16 MiB
// size threshold and 100 submissions per file, retention off.
func Default() Config {
	return Config{
		FilenamePrefix:        "i965_blackbox_log",
		MaxFileSizeBytes:      16 << 20,
		MaxSubmissionsPerFile: 100,
		MaxRetainedFiles:      0,
		LogLevel:              "info",
		LogFormat:             "text",
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
