// Package config provides loading and environment overlay for the blackbox
// recorder configuration. It exposes a Default() baseline matching the
// original recorder's built-ins and helpers to construct session options.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load("/etc/blackbox.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	// Pass cfg into blackbox.Options
//	s, _ := blackbox.Open(blackbox.Options{Prefix: cfg.FilenamePrefix, MaxFileSize: cfg.MaxFileSizeBytes})
//	defer s.Close()
package config
