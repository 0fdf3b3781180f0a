package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Check.ChunkSize == 0 {
		cfg.Check.ChunkSize = 64 * 1024
	}
	// UnicodeNormalization defaults to true when unset (nil).
	if cfg.Check.UnicodeNormalization == nil {
		t := true
		cfg.Check.UnicodeNormalization = &t
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxRequestSize == 0 {
		cfg.Server.MaxRequestSize = 10 * 1024 * 1024
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
}
