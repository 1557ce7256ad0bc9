// Package appconfig loads the application configuration consumed by
// the event core: external-source selection, queue sizing, and the
// terminal profiles the workspace resolves against.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/soraterm/soraterm/internal/dispatch"
	"github.com/soraterm/soraterm/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion  int             `mapstructure:"config_version" yaml:"config_version"`
	DefaultProfile string          `mapstructure:"default_profile" yaml:"default_profile"`
	Profiles       []ProfileConfig `mapstructure:"profiles" yaml:"profiles"`
	Events         EventsConfig    `mapstructure:"events" yaml:"events"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ProfileConfig describes one terminal profile.
type ProfileConfig struct {
	Name             string `mapstructure:"name" yaml:"name"`
	Shell            string `mapstructure:"shell" yaml:"shell"`
	WorkingDirectory string `mapstructure:"working_directory" yaml:"working_directory,omitempty"`
}

// EventsConfig controls the event injection subsystem.
type EventsConfig struct {
	// Source selects the external event source: none, stdio, or socket.
	Source string `mapstructure:"source" yaml:"source"`
	// SocketPath is the local endpoint used when Source is socket.
	SocketPath string `mapstructure:"socket_path" yaml:"socket_path"`
	// QueueDepth bounds the dispatch queue.
	QueueDepth int `mapstructure:"queue_depth" yaml:"queue_depth"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return Config{
		ConfigVersion:  CurrentConfigVersion,
		DefaultProfile: "default",
		Profiles: []ProfileConfig{
			{Name: "default", Shell: shell},
		},
		Events: EventsConfig{
			Source:     string(schema.SourceNone),
			SocketPath: defaultSocketPath(),
			QueueDepth: dispatch.DefaultQueueDepth,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".soraterm", "config.yaml"), nil
}

func defaultSocketPath() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join("/run", "user", fmt.Sprintf("%d", os.Getuid()))
	}
	return filepath.Join(runtimeDir, "soraterm", "events.sock")
}

// SchemaProfiles converts the configured profiles to schema values.
func (c Config) SchemaProfiles() []schema.Profile {
	out := make([]schema.Profile, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, schema.Profile{
			Name:             schema.ProfileName(p.Name),
			Shell:            p.Shell,
			WorkingDirectory: p.WorkingDirectory,
		})
	}
	return out
}
