// Package vaults provides functionality for discovering, loading, and
// selecting Obsidian vaults on the local machine.
//
// A vault is any directory containing a config directory (.obsidian by
// default). This package handles:
//
//   - Vault discovery, both below a root directory and system-wide
//   - Per-vault configuration loading (odot.toml files)
//   - Vault ignore functionality (.odotignore files)
//   - Interactive vault selection
//
// The package implements the core vault management logic that feeds into
// the odot install pipeline.
package vaults
