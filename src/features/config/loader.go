package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// setSourceSecret sets the secret for a source from an environment variable
func setSourceSecret(cfg *Config, sourceName, envVar string) {
	if key := os.Getenv(envVar); key != "" {
		if cfg.Sources == nil {
			cfg.Sources = make(map[string]Source)
		}
		if source, exists := cfg.Sources[sourceName]; exists {
			source.Secret = &key
			cfg.Sources[sourceName] = source
		} else {
			cfg.Sources[sourceName] = Source{Enabled: false, Secret: &key}
		}
	}
}

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		cfg := defaultConfig

		if err := saveDefaultConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		applyEnvOverrides(&cfg)
		return NewManager(&cfg), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	applyEnvOverrides(&cfg)

	return NewManager(&cfg), nil
}

// applyEnvOverrides layers environment variables over the loaded file.
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.ParseUint(port, 10, 32); err == nil {
			cfg.Server.Port = uint32(p)
		}
	}

	setSourceSecret(cfg, "lyrics-api", "LYRICS_API_TOKEN") // NOTE: Add this to the docs
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
