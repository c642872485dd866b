package testutil

import (
	"path/filepath"
	"testing"

	"github.com/recule556688/obsidian-dotfiles/pkg/filesystem"
	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	// EnvMemoryOnly keeps everything on an in-memory filesystem
	EnvMemoryOnly EnvType = iota
	// EnvIsolated uses the real filesystem inside a temp directory and
	// redirects HOME and the XDG directories there
	EnvIsolated
)

// TestEnvironment provides an isolated layout for command tests: a source
// vault holding the canonical config directory plus any number of target
// vaults.
type TestEnvironment struct {
	// Root holds the source and all vaults
	Root string

	// SourceConfig is the source config directory, set by SetupSource
	SourceConfig string

	// Core dependencies
	FS    types.FS
	Paths paths.Paths

	// Environment type
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()

		home := filepath.Join(env.Root, "home")
		if err := env.FS.MkdirAll(home, 0755); err != nil {
			t.Fatalf("Failed to create home directory: %v", err)
		}
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
		t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
		t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	default:
		env.Root = "/virtual"
		env.FS = filesystem.NewMemory()
		if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
			t.Fatalf("Failed to create root directory: %v", err)
		}
	}

	// The xdg package resolves its directories at init time, so XDG_*
	// variables set above do not reach it. The ODOT_* overrides are read
	// on every call and keep each run inside the environment root.
	t.Setenv(paths.EnvOdotConfigDir, filepath.Join(env.Root, "xdg", "config", "odot"))
	t.Setenv(paths.EnvOdotDataDir, filepath.Join(env.Root, "xdg", "data", "odot"))
	t.Setenv(paths.EnvOdotCacheDir, filepath.Join(env.Root, "xdg", "cache", "odot"))
	t.Setenv(paths.EnvSourceRoot, filepath.Join(env.Root, "source"))

	pathsInstance, err := paths.New(filepath.Join(env.Root, "source"))
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = pathsInstance

	return env
}

// SetupSource creates the source vault with a config directory holding the
// given files and returns the config directory path. File names may carry
// relative subpaths like "plugins/daily/data.json".
func (env *TestEnvironment) SetupSource(files map[string]string) string {
	env.t.Helper()

	configDir := filepath.Join(env.Root, "source", ".obsidian")
	if err := env.FS.MkdirAll(configDir, 0755); err != nil {
		env.t.Fatalf("Failed to create source config directory: %v", err)
	}

	env.writeTree(configDir, files)
	env.SourceConfig = configDir
	return configDir
}

// SetupVault creates a target vault whose files are relative to the vault
// root, so config files go under ".obsidian/...". The vault always gets a
// config directory.
func (env *TestEnvironment) SetupVault(name string, files map[string]string) types.Vault {
	env.t.Helper()

	vaultPath := filepath.Join(env.Root, name)
	configPath := filepath.Join(vaultPath, ".obsidian")
	if err := env.FS.MkdirAll(configPath, 0755); err != nil {
		env.t.Fatalf("Failed to create vault %s: %v", name, err)
	}

	env.writeTree(vaultPath, files)

	return types.Vault{
		Name:       filepath.Base(vaultPath),
		Path:       vaultPath,
		ConfigPath: configPath,
	}
}

func (env *TestEnvironment) writeTree(base string, files map[string]string) {
	env.t.Helper()

	for name, content := range files {
		path := filepath.Join(base, name)
		if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
			env.t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
			env.t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}
