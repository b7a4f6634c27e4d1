// Package config handles runtime configuration: defaults, optional JSON
// overlay, then command-line flags, with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the taskkeeper CLI.
//
// Fields:
//   - DataFilePath: location of the persisted store. Relative paths are
//     resolved against the working directory.
//   - LockTimeout: how long to wait for the store's advisory file lock
//     before failing.
type Config struct {
	DataFilePath string
	LockTimeout  time.Duration
}

// LoadDefaults populates c with the defaults: data.json next to the
// process, 5 second lock wait.
func (c *Config) LoadDefaults() {
	c.DataFilePath = "data.json"
	c.LockTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
