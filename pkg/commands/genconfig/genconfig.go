// Package genconfig implements the genconfig command: print the default
// configuration, or write config file templates for the user or for
// individual vaults.
package genconfig

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

// Options holds options for the genconfig command.
type Options struct {
	// VaultPaths are vaults that get an odot.toml template in their
	// config directory. Empty writes the user config file instead.
	VaultPaths []string
	// Write persists files. Without it the command only returns content.
	Write bool
	// Force overwrites config files that already exist.
	Force bool
	// FS is the filesystem the command writes to. Nil means the operating
	// system filesystem.
	FS types.FS
}

// GenConfig outputs or writes the default configuration. Existing files
// are left alone unless Force is set, so rerunning is safe.
func GenConfig(opts Options) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	result := &types.GenConfigResult{FilesWritten: []string{}}

	if !opts.Write {
		// Preview mode carries the content, write mode the file list.
		logger.Debug().Msg("Outputting config to stdout")
		result.ConfigContent = content
		return result, nil
	}

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
		logger.Warn().Err(err).Msg("Failed to load configuration, using defaults")
		cfg = config.Default()
	}

	logger.Info().Int("vaults", len(opts.VaultPaths)).Msg("Writing config files")

	type target struct {
		path    string
		content string
	}
	var writes []target

	if len(opts.VaultPaths) == 0 {
		writes = append(writes, target{p.ConfigFilePath(), content})
	} else {
		vaultContent := config.GenerateVaultConfigContent()
		for _, path := range opts.VaultPaths {
			vault, err := vaults.Resolve(paths.ExpandHome(path), cfg.Search.ConfigDirName, fsys)
			if err != nil {
				return nil, err
			}
			writes = append(writes, target{
				path:    p.VaultConfigPath(vault.ConfigPath),
				content: vaultContent,
			})
		}
	}

	for _, w := range writes {
		dir := filepath.Dir(w.path)
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create directory %s", dir)
		}

		if _, err := fsys.Stat(w.path); err == nil && !opts.Force {
			logger.Warn().Str("path", w.path).Msg("Config file already exists, skipping")
			continue
		}

		if err := fsys.WriteFile(w.path, []byte(w.content), 0644); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileWrite,
				"failed to write config to %s", w.path)
		}

		logger.Info().Str("path", w.path).Msg("Written config file")
		result.FilesWritten = append(result.FilesWritten, w.path)
	}

	return result, nil
}
