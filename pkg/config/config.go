/*
Package config manages TOML config for approxdict commands and servers.

The file is looked up in this order:

 1. the --config flag
 2. $APPROXDICT_CONFIG
 3. config.toml in the user config directory, written with defaults when missing
 4. builtin defaults

A file that fails strict decoding is recovered key by key: every value of
the right type is kept, the rest fall back to defaults.
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/approxdict/internal/utils"
	"github.com/charmbracelet/log"
)

// EnvConfigPath names the environment variable holding a config file path
const EnvConfigPath = "APPROXDICT_CONFIG"

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Load    LoaderConfig  `toml:"load"`
	Compile CompileConfig `toml:"compile"`
	Server  ServerConfig  `toml:"server"`
}

// SearchConfig has query options.
type SearchConfig struct {
	MaxQueryLen int `toml:"max_query_len"`
	Workers     int `toml:"workers"`
}

// LoaderConfig holds dictionary loading options.
type LoaderConfig struct {
	Verify   bool `toml:"verify"`
	Prefault bool `toml:"prefault"`
}

// CompileConfig holds word list compiler options.
type CompileConfig struct {
	Canonical bool `toml:"canonical"`
}

// ServerConfig has HTTP server options.
type ServerConfig struct {
	HTTPAddr        string `toml:"http_addr"`
	ReadTimeoutSec  int    `toml:"read_timeout_sec"`
	WriteTimeoutSec int    `toml:"write_timeout_sec"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxQueryLen: 256,
			Workers:     0,
		},
		Load: LoaderConfig{
			Verify:   false,
			Prefault: true,
		},
		Compile: CompileConfig{
			Canonical: false,
		},
		Server: ServerConfig{
			HTTPAddr:        "127.0.0.1:8337",
			ReadTimeoutSec:  5,
			WriteTimeoutSec: 10,
		},
	}
}

// GetConfigDir returns <user config dir>/approxdict, or the executable
// directory when that cannot be created or written
func GetConfigDir() (string, error) {
	if base, err := os.UserConfigDir(); err == nil {
		dir := filepath.Join(base, "approxdict")
		status := utils.CheckDirStatus(dir, true)
		if status.Writable {
			return dir, nil
		}
		log.Debugf("Config dir %s unusable: %v", dir, status.Err)
	} else {
		log.Debugf("No user config dir: %v", err)
	}

	execDir, err := utils.ExecutableDir()
	if err != nil {
		return "", err
	}
	if status := utils.CheckDirStatus(execDir, false); !status.Writable {
		return "", status.Err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads the first usable config in lookup order and
// returns it with the path it came from, empty for builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	explicit := []struct {
		path, origin string
	}{
		{customConfigPath, "--config"},
		{os.Getenv(EnvConfigPath), "$" + EnvConfigPath},
	}
	for _, c := range explicit {
		if c.path == "" {
			continue
		}
		if !utils.FileExists(c.path) {
			log.Warnf("Config file %s from %s not found. Trying next location...", c.path, c.origin)
			continue
		}
		cfg, err := LoadConfig(c.path)
		if err != nil {
			log.Warnf("Failed to load config %s from %s: %v. Trying next location...", c.path, c.origin, err)
			continue
		}
		log.Debugf("Loaded config from %s: %s", c.origin, c.path)
		return cfg, c.path, nil
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("No usable config directory: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	return cfg, defaultPath, nil
}

// InitConfig loads configPath, first writing the defaults there when it does not exist
func InitConfig(configPath string) (*Config, error) {
	if utils.FileExists(configPath) {
		return LoadConfig(configPath)
	}
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := SaveConfig(cfg, configPath); err != nil {
		return nil, err
	}
	log.Debugf("Created default config file at: %s", configPath)
	return cfg, nil
}

// LoadConfig loads from a TOML file over the defaults
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	unknown, err := utils.DecodeTOMLFile(configPath, cfg)
	if err != nil {
		log.Warnf("TOML parsing error: %v. Attempting partial recovery...", err)
		return recoverConfig(configPath), nil
	}
	if len(unknown) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %s", configPath, strings.Join(unknown, ", "))
	}
	return cfg, nil
}

// recoverer copies one key of a section into cfg when it has the right type
type recoverer func(cfg *Config, section map[string]any) bool

func intKey(key string, field func(*Config) *int) recoverer {
	return func(cfg *Config, section map[string]any) bool {
		v, ok := utils.LookupInt(section, key)
		if ok {
			*field(cfg) = v
		}
		return ok
	}
}

func boolKey(key string, field func(*Config) *bool) recoverer {
	return func(cfg *Config, section map[string]any) bool {
		v, ok := utils.Lookup[bool](section, key)
		if ok {
			*field(cfg) = v
		}
		return ok
	}
}

func stringKey(key string, field func(*Config) *string) recoverer {
	return func(cfg *Config, section map[string]any) bool {
		v, ok := utils.Lookup[string](section, key)
		if ok {
			*field(cfg) = v
		}
		return ok
	}
}

var recoverers = map[string][]recoverer{
	"search": {
		intKey("max_query_len", func(c *Config) *int { return &c.Search.MaxQueryLen }),
		intKey("workers", func(c *Config) *int { return &c.Search.Workers }),
	},
	"load": {
		boolKey("verify", func(c *Config) *bool { return &c.Load.Verify }),
		boolKey("prefault", func(c *Config) *bool { return &c.Load.Prefault }),
	},
	"compile": {
		boolKey("canonical", func(c *Config) *bool { return &c.Compile.Canonical }),
	},
	"server": {
		stringKey("http_addr", func(c *Config) *string { return &c.Server.HTTPAddr }),
		intKey("read_timeout_sec", func(c *Config) *int { return &c.Server.ReadTimeoutSec }),
		intKey("write_timeout_sec", func(c *Config) *int { return &c.Server.WriteTimeoutSec }),
	},
}

// recoverConfig keeps every well-typed key of a file the strict decoder rejected
func recoverConfig(configPath string) *Config {
	cfg := DefaultConfig()

	tables, err := utils.DecodeTOMLTables(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration: %v. Using all defaults.", err)
		return cfg
	}

	kept := 0
	for name, keys := range recoverers {
		section, ok := utils.Section(tables, name)
		if !ok {
			continue
		}
		for _, apply := range keys {
			if apply(cfg, section) {
				kept++
			}
		}
	}
	log.Warnf("Recovered %d settings from %s, the rest use defaults", kept, configPath)
	return cfg
}

// GetActiveConfigPath describes where the running config came from
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
