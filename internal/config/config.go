// Package config loads tablesmith settings with layered precedence:
// defaults, then a tablesmith.yaml discovered upward from the working
// directory, then TABLESMITH_ environment variables, then command flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, checked in order.
const (
	FileName    = "tablesmith.yaml"
	FileNameAlt = "tablesmith.yml"
)

// maxUpwardSearchLevels bounds the walk toward the filesystem root when
// discovering the config file.
const maxUpwardSearchLevels = 8

// Config holds all runtime settings.
type Config struct {
	// Workspace is the directory holding the workspace database.
	Workspace string `koanf:"workspace"`
	// Schema is the named schema the CLI operates on.
	Schema string `koanf:"schema"`
	// History is the REPL history file path.
	History string `koanf:"history"`
	// NoColor disables terminal styling.
	NoColor bool `koanf:"no_color"`

	Server ServerConfig `koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	// Port is the listen port for serve.
	Port int `koanf:"port"`
	// SessionKey signs the session cookies. Generated per process when
	// empty.
	SessionKey string `koanf:"session_key"`
	// Watch reloads the active schema when the workspace changes on disk.
	Watch bool `koanf:"watch"`
}

// DatabasePath returns the workspace database file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Workspace, "workspace.db")
}

func defaults() map[string]any {
	return map[string]any{
		"workspace":   ".tablesmith",
		"schema":      "default",
		"history":     filepath.Join(os.TempDir(), ".tablesmith_history"),
		"no_color":    false,
		"server.host": "127.0.0.1",
		"server.port": 8815,
	}
}

// Load builds the configuration. cfgFile overrides discovery when set;
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		path = discover()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// TABLESMITH_SERVER_PORT=9000 -> server.port
	err := k.Load(env.Provider("TABLESMITH_", ".", func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, "TABLESMITH_"))
		if strings.HasPrefix(key, "server_") {
			return "server." + strings.TrimPrefix(key, "server_")
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// only flags the user actually set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "port":
				key = "server.port"
			case "host":
				key = "server.host"
			case "watch":
				key = "server.watch"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// discover walks upward from the working directory looking for a config
// file. Returns "" when none is found.
func discover() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i <= maxUpwardSearchLevels; i++ {
		for _, name := range []string{FileName, FileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}
