// Package paths provides centralized path handling for odot.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for all path operations throughout the odot codebase.
// It handles:
//
//   - Source vault root discovery and configuration
//   - XDG directory structure (data, config, cache)
//   - Path normalization and expansion
//   - Vault-specific path generation
//   - Log and configuration file locations
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - ODOT_SOURCE_ROOT: Vault holding the canonical config (default: git root or cwd)
//   - ODOT_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/odot)
//   - ODOT_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/odot)
//   - ODOT_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/odot)
//
// # XDG Base Directory Structure
//
// odot follows the XDG Base Directory specification:
//
//   - Data: $XDG_DATA_HOME/odot (persistent data)
//   - Config: $XDG_CONFIG_HOME/odot (user configuration)
//   - Cache: $XDG_CACHE_HOME/odot (temporary files, caches)
//
// # Usage
//
//	import "github.com/recule556688/obsidian-dotfiles/pkg/paths"
//
//	// Create a new Paths instance
//	p, err := paths.New("")  // Auto-detect source root
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Get various paths
//	root := p.SourceRoot()                     // /home/user/notes
//	config := p.SourceConfigPath(".obsidian")  // /home/user/notes/.obsidian
//
//	// Check if a path is within the source vault
//	isInside, err := p.IsInSource("/home/user/notes/.obsidian/app.json")
//	// isInside == true
package paths
