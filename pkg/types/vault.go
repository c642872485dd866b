package types

import (
	"github.com/recule556688/obsidian-dotfiles/pkg/config"
)

// Vault represents a directory holding an Obsidian vault: any directory
// that contains a config directory (usually .obsidian).
type Vault struct {
	// Name is the vault name (usually the directory name)
	Name string

	// Path is the absolute path to the vault directory
	Path string

	// ConfigPath is the absolute path to the vault's config directory
	ConfigPath string

	// Config contains vault-specific configuration from odot.toml
	Config config.VaultConfig

	// Ignored indicates the vault carries an .odotignore marker
	Ignored bool
}
