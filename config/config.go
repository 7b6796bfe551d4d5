// Package config supplies the ambient configuration surface for cmd/brex:
// a resolve.EnvLookup backed by real sources (OS environment, optional
// dotenv file parsed by this package), and a CLIConfig struct loaded
// via xconfig.
package config

import (
	"os"
	"strings"

	"github.com/marron-at-work/brex/xconfig"
)

// CLIConfig is the brex CLI's own configuration, loaded via xconfig from
// an optional config file/directory and the process environment (prefix
// BREX_). No command-line flag overrides these fields.
type CLIConfig struct {
	Alphabet  string `yaml:"alphabet" json:"alphabet" default:"unicode"`
	LogLevel  string `yaml:"log_level" json:"log_level" default:"info"`
	LogFormat string `yaml:"log_format" json:"log_format" default:"text"`
	CacheDir  string `yaml:"cache_dir" json:"cache_dir"`
}

// LoadCLIConfig loads CLIConfig from configPath (if non-empty) and the
// BREX_-prefixed environment, in that order, env taking precedence.
func LoadCLIConfig(configPath string) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	opts := []xconfig.Option{xconfig.WithEnv("BREX")}
	if configPath != "" {
		opts = append(opts, xconfig.WithFiles(configPath))
	}
	if err := xconfig.Load(cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnvLookup satisfies resolve.EnvLookup from the OS environment, optionally
// seeded first from a dotenv-style file (KEY=VALUE per line). It implements
// resolve.EnvLookup's Lookup(name) (string, bool) contract directly, rather
// than going through xconfig.Load's struct-reflection path, since EnvRef
// names are BREX source identifiers, not known ahead of time as struct
// fields.
type EnvLookup struct {
	overrides map[string]string
}

// NewEnvLookup builds an EnvLookup. If dotenvPath is non-empty, its
// KEY=VALUE lines are consulted before falling back to os.Getenv.
func NewEnvLookup(dotenvPath string) (*EnvLookup, error) {
	e := &EnvLookup{overrides: map[string]string{}}
	if dotenvPath == "" {
		return e, nil
	}
	data, err := os.ReadFile(dotenvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return e, nil
		}
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		val = strings.Trim(val, `"'`)
		e.overrides[key] = val
	}
	return e, nil
}

// Lookup implements resolve.EnvLookup.
func (e *EnvLookup) Lookup(name string) (string, bool) {
	if v, ok := e.overrides[name]; ok {
		return v, true
	}
	return os.LookupEnv(name)
}
