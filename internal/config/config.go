// Package config loads the evaluator's external configuration: the
// target language version and the three configurable diagnostic levels.
// Loading is a thin wrapper around github.com/BurntSushi/toml, grounded
// on the teacher's own TOML manifest handling.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Level is a configurable diagnostic's severity, or "none" to suppress it.
type Level string

const (
	LevelNone    Level = "none"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Valid reports whether l is one of the three recognized levels.
func (l Level) Valid() bool {
	switch l {
	case LevelNone, LevelWarning, LevelError:
		return true
	default:
		return false
	}
}

// Config is the configuration object the evaluator is parameterized by
// (§6 "Consumed from configuration").
type Config struct {
	PythonVersion              int   `toml:"python_version"`
	ReportOptionalMemberAccess Level `toml:"report_optional_member_access"`
	ReportOptionalSubscript    Level `toml:"report_optional_subscript"`
	ReportOptionalCall         Level `toml:"report_optional_call"`
}

// Default returns the configuration the evaluator falls back to when no
// manifest is present: the latest commonly-targeted language version,
// configurable diagnostics at warning level.
func Default() Config {
	return Config{
		PythonVersion:              312,
		ReportOptionalMemberAccess: LevelWarning,
		ReportOptionalSubscript:    LevelWarning,
		ReportOptionalCall:         LevelWarning,
	}
}

// Load reads a TOML manifest from path, starting from Default() so an
// omitted field keeps its default rather than zeroing out.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether every configurable level is one of the three
// recognized strings.
func (c Config) Validate() error {
	for _, l := range []Level{c.ReportOptionalMemberAccess, c.ReportOptionalSubscript, c.ReportOptionalCall} {
		if !l.Valid() {
			return fmt.Errorf("config: invalid diagnostic level %q", l)
		}
	}
	return nil
}
