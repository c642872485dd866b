// Package list implements the list command: discover vaults and report
// them without installing anything.
package list

import (
	"path/filepath"

	"github.com/recule556688/obsidian-dotfiles/pkg/config"
	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/filesystem"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
	"github.com/recule556688/obsidian-dotfiles/pkg/vaults"
)

// Options defines the options for the List command.
type Options struct {
	// SearchRoot is the directory discovery searches below in local mode.
	// Empty means the current directory.
	SearchRoot string
	// SourceConfig overrides the source config directory excluded from
	// results. Empty means <source root>/<config dir name>.
	SourceConfig string
	// SystemWide searches the whole filesystem.
	SystemWide bool
	// FS is the filesystem discovery runs against. Nil means the
	// operating system filesystem.
	FS types.FS
}

// List discovers the vaults the install command would consider. Ignored
// vaults stay in the listing, marked, so the user can see what install
// will pass over.
func List(opts Options) (*types.ListVaultsResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	p, err := paths.New("")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load configuration, using defaults")
		cfg = config.Default()
	}

	// A missing source is fine here: it only needs excluding when present.
	source := opts.SourceConfig
	if source == "" {
		source = p.SourceConfigPath(cfg.Search.ConfigDirName)
	}
	source, err = filepath.Abs(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"invalid source config path: %s", opts.SourceConfig)
	}

	res, err := vaults.Discover(vaults.DiscoverOptions{
		Root:          opts.SearchRoot,
		SystemWide:    opts.SystemWide,
		SourceConfig:  source,
		MaxResults:    cfg.Search.MaxResults,
		DenyList:      cfg.Search.DenyList,
		ConfigDirName: cfg.Search.ConfigDirName,
		FS:            fsys,
	})
	if err != nil {
		return nil, err
	}

	result := &types.ListVaultsResult{
		Vaults:    make([]types.VaultInfo, len(res.Vaults)),
		Truncated: res.Truncated,
	}
	for i, vault := range res.Vaults {
		result.Vaults[i] = types.VaultInfo{
			Name:    vault.Name,
			Path:    vault.Path,
			Ignored: vault.Ignored,
		}
	}

	log.Info().
		Str("command", "List").
		Int("vaultCount", len(result.Vaults)).
		Bool("truncated", result.Truncated).
		Msg("Command finished")
	return result, nil
}
