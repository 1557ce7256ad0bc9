package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/soraterm/soraterm/schema"
)

// Load reads configuration from the provided path. If path is empty,
// uses DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("default_profile", cfg.DefaultProfile)
	v.SetDefault("profiles", cfg.Profiles)
	v.SetDefault("events.source", cfg.Events.Source)
	v.SetDefault("events.socket_path", cfg.Events.SocketPath)
	v.SetDefault("events.queue_depth", cfg.Events.QueueDepth)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks constraints the event core relies on.
func Validate(cfg Config) error {
	source := schema.ExternalSource(cfg.Events.Source)
	if !source.Valid() {
		return fmt.Errorf("unsupported events.source %q; expected none, stdio, or socket", cfg.Events.Source)
	}
	if source == schema.SourceSocket && cfg.Events.SocketPath == "" {
		return fmt.Errorf("events.socket_path is required when events.source is socket")
	}
	if cfg.Events.QueueDepth < 0 {
		return fmt.Errorf("events.queue_depth must not be negative")
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Events.SocketPath = expandEnv(cfg.Events.SocketPath)
	for i := range cfg.Profiles {
		cfg.Profiles[i].Shell = expandEnv(cfg.Profiles[i].Shell)
		cfg.Profiles[i].WorkingDirectory = expandEnv(cfg.Profiles[i].WorkingDirectory)
	}
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
