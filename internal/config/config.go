// Package config loads compiler defaults (numeric precision, epsilon
// multipliers, solver timeouts, scheduler buffer sizes) from built-in
// defaults, an optional file and FTCOMPILE_ environment variables via viper.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config wraps a viper instance; handlers/passes pull individual settings
// out of it by key rather than binding to a rigid struct, matching the
// teacher's server-side config access pattern (options.C.GetBool("debug")).
type Config struct {
	*viper.Viper
}

// Defaults are the lowest-priority layer, below the file and env layers.
var defaults = map[string]interface{}{
	"debug":                      false,
	"precision":                  256,
	"epsilon.multiplier":         1.0,
	"gridsynth.diophantine_ms":   200,
	"gridsynth.factoring_ms":     50,
	"memopt.working_set_size":    32,
	"memopt.emitter":             "cost-aware",
	"server.port":                8080,
	"server.local_only":          true,
	"server.cors_allow_origin":   "*",
}

// Load builds a Config from the supplied defaults, a file named configPath
// (when configPath is non-empty), and environment variables prefixed
// FTCOMPILE_, in that ascending priority order: env overrides the file,
// which overrides the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("FTCOMPILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}
	return &Config{v}, nil
}

// Precision returns the default arbitrary-precision float mantissa size.
func (c *Config) Precision() uint { return uint(c.GetInt("precision")) }

// EpsilonMultiplier returns the configured epsilon.multiplier setting. No
// synthesis path in this module reads it; the epsilon handed to the grid
// solver is not scaled by it.
func (c *Config) EpsilonMultiplier() float64 { return c.GetFloat64("epsilon.multiplier") }
