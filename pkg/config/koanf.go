package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides
const envPrefix = "ODOT_"

// Load builds the effective configuration. userConfigPath may be empty or
// point to a file that does not exist; both cases fall through to the
// embedded defaults plus environment overrides.
func Load(userConfigPath string) (*Config, error) {
	k, err := loadKoanf(userConfigPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// loadKoanf layers all configuration sources into a koanf instance
func loadKoanf(userConfigPath string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load app config (embedded odot.toml)
	if err := k.Load(&rawBytesProvider{bytes: appConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	// 3. Load the user config file if it exists
	if userConfigPath != "" {
		if _, err := os.Stat(userConfigPath); err == nil {
			if err := k.Load(file.Provider(userConfigPath), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", userConfigPath, err)
			}
		}
	}

	// 4. Environment overrides: ODOT_SEARCH_MAX_RESULTS -> search.max_results.
	// Only the first underscore separates section from key, so keys may
	// themselves contain underscores. List values are comma-separated.
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(s, v string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		key = strings.Replace(key, "_", ".", 1)
		if key == "search.deny_list" {
			return key, splitList(v)
		}
		return key, v
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	return k, nil
}

// splitList splits a comma-separated environment value into trimmed entries
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
