// Package config loads odot's layered configuration.
//
// Settings are resolved in order, later layers overriding earlier ones:
//
//  1. Embedded system defaults (embedded/defaults.toml)
//  2. Embedded app config (embedded/odot.toml)
//  3. User config file ($XDG_CONFIG_HOME/odot/config.toml)
//  4. ODOT_* environment variables
//
// Per-vault odot.toml files are handled separately by pkg/vaults since they
// apply to a single vault, not the whole run.
package config

// Search holds vault discovery settings
type Search struct {
	// ConfigDirName is the directory name that marks a vault
	ConfigDirName string `koanf:"config_dir_name" toml:"config_dir_name"`

	// MaxResults caps how many vaults discovery returns
	MaxResults int `koanf:"max_results" toml:"max_results"`

	// DenyList contains path substrings pruned during system-wide discovery
	DenyList []string `koanf:"deny_list" toml:"deny_list"`
}

// Install holds installer settings
type Install struct {
	// BackupTimestamp is the Go time layout for backup directory suffixes
	BackupTimestamp string `koanf:"backup_timestamp" toml:"backup_timestamp"`
}

// Notes holds daily note settings
type Notes struct {
	// Extension of daily notes considered by organize and link
	Extension string `koanf:"extension" toml:"extension"`
}

// Config is the main configuration structure
type Config struct {
	Search  Search  `koanf:"search"`
	Install Install `koanf:"install"`
	Notes   Notes   `koanf:"notes"`
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Fallback to minimal config if the embedded defaults fail to parse
		return &Config{
			Search: Search{
				ConfigDirName: ".obsidian",
				MaxResults:    100,
			},
			Install: Install{
				BackupTimestamp: "20060102-150405",
			},
			Notes: Notes{
				Extension: ".md",
			},
		}
	}
	return cfg
}
