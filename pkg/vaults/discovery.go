package vaults

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/recule556688/obsidian-dotfiles/pkg/config"
	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/filesystem"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// DiscoverOptions controls a vault search.
type DiscoverOptions struct {
	// Root is the directory to search below in local mode.
	// Empty means the current directory.
	Root string

	// SystemWide walks the whole filesystem from / instead of Root.
	SystemWide bool

	// SourceConfig is the absolute path of the source config directory.
	// It is never reported as a target.
	SourceConfig string

	// MaxResults caps how many config directories a search collects.
	// Zero means the configured default.
	MaxResults int

	// DenyList contains path substrings pruned during a system-wide walk.
	// Nil means the configured default.
	DenyList []string

	// ConfigDirName is the directory name that marks a vault.
	// Empty means the configured default.
	ConfigDirName string

	// FS is the filesystem to search. Nil means the operating system.
	FS types.FS
}

// DiscoverResult holds the vaults a search found.
type DiscoverResult struct {
	// Vaults in walk order
	Vaults []types.Vault

	// Truncated is set when the search stopped at MaxResults
	Truncated bool
}

// Discover walks a directory tree collecting vaults: directories whose base
// name equals the configured config dir name. Each hit's parent directory is
// the vault, the hit itself its config directory. Unreadable subtrees are
// skipped, vaults that fail to load are logged and dropped.
func Discover(opts DiscoverOptions) (*DiscoverResult, error) {
	logger := logging.GetLogger("vaults.discovery")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	defaults := config.Default()
	configDirName := opts.ConfigDirName
	if configDirName == "" {
		configDirName = defaults.Search.ConfigDirName
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaults.Search.MaxResults
	}
	denyList := opts.DenyList
	if denyList == nil {
		denyList = defaults.Search.DenyList
	}

	root := opts.Root
	if opts.SystemWide {
		root = string(filepath.Separator)
	} else {
		if root == "" {
			root = "."
		}
		// Absolute hit paths, so the source config comparison holds
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput,
				"invalid search root: %s", root)
		}
		root = abs
		info, err := fs.Stat(root)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrNotFound,
				"search root not found: %s", root)
		}
		if !info.IsDir() {
			return nil, errors.New(errors.ErrInvalidInput, "search root is not a directory").
				WithDetail("path", root)
		}
	}

	logger.Debug().
		Str("root", root).
		Str("configDirName", configDirName).
		Bool("systemWide", opts.SystemWide).
		Msg("Searching for vaults")

	w := &walker{
		fs:            fs,
		configDirName: configDirName,
		systemWide:    opts.SystemWide,
		denyList:      denyList,
		maxResults:    maxResults,
		logger:        logger,
	}
	if opts.SourceConfig != "" {
		w.sourceConfig = filepath.Clean(opts.SourceConfig)
	}
	w.walk(root)

	vaults := make([]types.Vault, 0, len(w.hits))
	for _, configPath := range w.hits {
		vault, err := loadVaultFS(configPath, fs)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("path", configPath).
				Msg("Failed to load vault, skipping")
			continue
		}
		vaults = append(vaults, *vault)
	}

	logger.Info().
		Int("count", len(vaults)).
		Bool("truncated", w.truncated).
		Msg("Discovered vaults")

	return &DiscoverResult{Vaults: vaults, Truncated: w.truncated}, nil
}

// Resolve loads the vault at an explicitly given path. The path may be the
// vault directory itself or its config directory.
func Resolve(path, configDirName string, fsys types.FS) (*types.Vault, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if configDirName == "" {
		configDirName = config.Default().Search.ConfigDirName
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"invalid target path: %s", path)
	}

	if _, err := fsys.Stat(abs); err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultNotFound,
			"target path does not exist: %s", path)
	}

	configPath := abs
	if filepath.Base(abs) != configDirName {
		configPath = filepath.Join(abs, configDirName)
		if _, err := fsys.Stat(configPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrVaultNotFound,
				"no %s directory under %s", configDirName, path)
		}
	}

	return loadVaultFS(configPath, fsys)
}

// walker carries the state of one discovery walk.
type walker struct {
	fs            types.FS
	configDirName string
	sourceConfig  string
	systemWide    bool
	denyList      []string
	maxResults    int
	logger        zerolog.Logger

	hits      []string
	truncated bool
}

func (w *walker) walk(dir string) {
	if w.truncated {
		return
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		// Permission errors are routine in system-wide mode
		w.logger.Trace().
			Err(err).
			Str("dir", dir).
			Msg("Skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		if w.truncated {
			return
		}
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		if entry.Name() == w.configDirName {
			if w.sourceConfig != "" && filepath.Clean(path) == w.sourceConfig {
				w.logger.Trace().
					Str("path", path).
					Msg("Skipping source config directory")
				continue
			}
			if len(w.hits) >= w.maxResults {
				w.truncated = true
				return
			}
			w.logger.Trace().
				Str("path", path).
				Msg("Found vault config directory")
			w.hits = append(w.hits, path)
			// No vaults nest inside a config directory
			continue
		}

		if w.systemWide && denied(path, w.denyList) {
			w.logger.Trace().
				Str("path", path).
				Msg("Pruned by deny list")
			continue
		}

		w.walk(path)
	}
}

// denied reports whether any deny-list substring occurs in path.
func denied(path string, denyList []string) bool {
	for _, substr := range denyList {
		if substr != "" && strings.Contains(path, substr) {
			return true
		}
	}
	return false
}

// loadVaultFS creates a Vault from the given config directory path,
// reading the vault's odot.toml and .odotignore marker if present.
func loadVaultFS(configPath string, fs types.FS) (*types.Vault, error) {
	logger := logging.GetLogger("vaults.discovery")

	info, err := fs.Stat(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultAccess,
			"failed to stat vault config directory %s", configPath)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrVaultInvalid, "vault config path is not a directory").
			WithDetail("path", configPath)
	}

	vaultPath := filepath.Dir(configPath)
	vault := &types.Vault{
		Name:       filepath.Base(vaultPath),
		Path:       vaultPath,
		ConfigPath: configPath,
	}

	vaultConfigPath := filepath.Join(configPath, paths.VaultConfigFile)
	if _, err := fs.Stat(vaultConfigPath); err == nil {
		cfg, err := loadVaultConfigFS(vaultConfigPath, fs)
		if err != nil {
			return nil, err
		}
		vault.Config = cfg
	}

	checker := NewIgnoreChecker(fs)
	vault.Ignored = checker.ShouldIgnoreVault(vault.ConfigPath) || vault.Config.Skip

	logger.Trace().
		Str("vault", vault.Name).
		Str("path", vault.Path).
		Bool("ignored", vault.Ignored).
		Msg("Loaded vault")

	return vault, nil
}

// loadVaultConfigFS reads and parses a vault's odot.toml file.
func loadVaultConfigFS(path string, fs types.FS) (config.VaultConfig, error) {
	var cfg config.VaultConfig

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to read vault config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse vault config %s", path)
	}

	return cfg, nil
}
