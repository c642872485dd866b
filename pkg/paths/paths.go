// Package paths provides centralized path handling for odot.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
)

// Environment variable names
const (
	// EnvSourceRoot is the primary environment variable for the vault
	// holding the canonical config
	EnvSourceRoot = "ODOT_SOURCE_ROOT"

	// EnvOdotDataDir overrides the XDG data directory for odot
	EnvOdotDataDir = "ODOT_DATA_DIR"

	// EnvOdotConfigDir overrides the XDG config directory for odot
	EnvOdotConfigDir = "ODOT_CONFIG_DIR"

	// EnvOdotCacheDir overrides the XDG cache directory for odot
	EnvOdotCacheDir = "ODOT_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define odot's own file locations and are NOT
// user-configurable. User-configurable paths belong in pkg/config instead.
const (
	// OdotDirName is the directory name for odot-specific files
	OdotDirName = "odot"

	// VaultConfigFile is the name of the per-vault configuration file
	VaultConfigFile = "odot.toml"

	// IgnoreFile marks a vault as excluded from installs
	IgnoreFile = ".odotignore"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "odot.log"
)

// Paths provides centralized path management for odot
type Paths interface {
	SourceRoot() string
	UsedFallback() bool
	SourceConfigPath(configDirName string) string
	VaultConfigPath(configPath string) string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	ConfigFilePath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	IsInSource(path string) (bool, error)
}

// paths provides centralized path management for odot
type paths struct {
	// sourceRoot is the vault holding the canonical config directory
	sourceRoot string

	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgCache is the XDG cache directory
	xdgCache string

	// xdgState is the XDG state directory
	xdgState string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given source root.
// If sourceRoot is empty, it will be determined from environment variables
// or defaults.
func New(sourceRoot string) (Paths, error) {
	p := &paths{}

	// Set up source root
	if sourceRoot == "" {
		root, usedFallback, err := findSourceRoot()
		if err != nil {
			return nil, err
		}
		p.sourceRoot = root
		p.usedFallback = usedFallback
	} else {
		p.sourceRoot = expandHome(sourceRoot)
		p.usedFallback = false
	}

	// Ensure source root is absolute
	absRoot, err := filepath.Abs(p.sourceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for source root")
	}
	p.sourceRoot = absRoot

	// Set up XDG directories
	if err := p.setupXDGDirs(); err != nil {
		return nil, err
	}

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() error {
	// Data directory
	if dataDir := os.Getenv(EnvOdotDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, OdotDirName)
	}

	// Config directory
	if configDir := os.Getenv(EnvOdotConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, OdotDirName)
	}

	// Cache directory
	if cacheDir := os.Getenv(EnvOdotCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, OdotDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, OdotDirName)
	} else {
		homeDir := GetHomeDirectoryWithDefault("/tmp")
		p.xdgState = filepath.Join(homeDir, ".local", "state", OdotDirName)
	}

	return nil
}

// findSourceRoot determines the source root using the following priority:
// 1. ODOT_SOURCE_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
//
// The function returns:
// - string: The resolved source root path
// - bool: Whether the current working directory was used as fallback
// - error: Any error that occurred during resolution
//
// This allows odot to work in three common scenarios:
// - Explicit configuration via ODOT_SOURCE_ROOT
// - Automatic detection when run from within a git-managed vault
// - Fallback to current directory for quick testing or non-git setups
func findSourceRoot() (string, bool, error) {
	// Check ODOT_SOURCE_ROOT first (highest priority)
	if root := os.Getenv(EnvSourceRoot); root != "" {
		return expandHome(root), false, nil
	}

	// Try to find git repository root
	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		if os.Getenv("ODOT_DEBUG") != "" {
			fmt.Fprintf(os.Stderr, "Debug: findSourceRoot using git root: %s\n", gitRoot)
		}
		return gitRoot, false, nil
	}

	// Fallback to current working directory with warning
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	output, err := cmd.Output()
	if err != nil {
		// Git command failed - not in a git repo or git not installed
		return "", err
	}

	// Trim whitespace and return the path
	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			// Can't expand, return as-is
			return path
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// SourceRoot returns the vault holding the canonical config directory
func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// SourceConfigPath returns the canonical config directory inside the source root
func (p *paths) SourceConfigPath(configDirName string) string {
	return filepath.Join(p.sourceRoot, configDirName)
}

// VaultConfigPath returns the path of the odot.toml inside a vault's
// config directory, next to its .odotignore marker
func (p *paths) VaultConfigPath(configPath string) string {
	return filepath.Join(configPath, VaultConfigFile)
}

// DataDir returns the XDG data directory for odot
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for odot
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for odot
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// ConfigFilePath returns the path to the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	// Expand home directory
	expanded := expandHome(path)

	// Make absolute
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	// Clean the path
	return filepath.Clean(abs), nil
}

// IsInSource checks if a path is within the source root
func (p *paths) IsInSource(path string) (bool, error) {
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(p.sourceRoot, normalized)
	if err != nil {
		return false, nil
	}

	// If the relative path starts with .., it's outside the source root
	return !strings.HasPrefix(rel, ".."), nil
}

// ExpandHome is a utility function that expands ~ in paths
// This is exposed for compatibility with existing code
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// GetHomeDirectoryWithDefault returns the home directory or a default value
func GetHomeDirectoryWithDefault(defaultDir string) string {
	homeDir, err := GetHomeDirectory()
	if err != nil {
		return defaultDir
	}
	return homeDir
}

// LogFilePath returns the path to the odot log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
