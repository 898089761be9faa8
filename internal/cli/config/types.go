// Package config provides configuration management for the relsql CLI.
//
// Settings are layered with koanf: built-in defaults, then relsql.yaml, then
// RELSQL_* environment variables, then explicitly set command-line flags.
package config

import "github.com/leapstack-labs/relsql/pkg/core"

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// Default configuration values.
const (
	DefaultDialect = "ansi"
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect       string        `koanf:"dialect"`
	OutputFormat  string        `koanf:"output"`
	Verbose       bool          `koanf:"verbose"`
	LogParameters bool          `koanf:"log_parameters"`
	Target        *TargetConfig `koanf:"target"`
}

// AdapterConfig returns the executor connection settings, or false when no
// target is configured.
func (c *Config) AdapterConfig() (core.AdapterConfig, bool) {
	if c.Target == nil || c.Target.Type == "" {
		return core.AdapterConfig{}, false
	}
	return c.Target.AdapterConfig(), true
}
