// Package backups implements the backups command: inventory the
// timestamped backup directories the install command leaves next to each
// target config directory.
package backups

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/recule556688/obsidian-dotfiles/pkg/config"
	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/filesystem"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
	"github.com/recule556688/obsidian-dotfiles/pkg/vaults"
)

// backupInfix sits between the config dir name and the timestamp.
const backupInfix = ".backup-"

// Options defines the options for the Backups command.
type Options struct {
	// TargetPaths are explicit vault or config directory paths. When set,
	// discovery is skipped.
	TargetPaths []string
	// SearchRoot is the directory discovery searches below in local mode.
	// Empty means the current directory.
	SearchRoot string
	// SystemWide searches the whole filesystem for targets.
	SystemWide bool
	// FS is the filesystem the command runs against. Nil means the
	// operating system filesystem.
	FS types.FS
}

// Backups lists the backup directories of each target, newest first per
// target. The command never writes; ignored vaults are inventoried like
// any other.
func Backups(opts Options) (*types.BackupsResult, error) {
	log := logging.GetLogger("commands.backups")
	log.Debug().Str("command", "Backups").Msg("Executing command")

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

	layout := cfg.Install.BackupTimestamp
	if layout == "" {
		layout = config.Default().Install.BackupTimestamp
	}

	var targets []types.Vault
	if len(opts.TargetPaths) > 0 {
		for _, path := range opts.TargetPaths {
			vault, err := vaults.Resolve(path, cfg.Search.ConfigDirName, fsys)
			if err != nil {
				return nil, err
			}
			targets = append(targets, *vault)
		}
	} else {
		source, err := filepath.Abs(p.SourceConfigPath(cfg.Search.ConfigDirName))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal,
				"failed to resolve source config path")
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
		targets = res.Vaults
	}

	result := &types.BackupsResult{}
	for _, vault := range targets {
		backups, err := listBackups(fsys, vault.ConfigPath, layout)
		if err != nil {
			return nil, err
		}
		result.Backups = append(result.Backups, backups...)
	}

	log.Info().
		Str("command", "Backups").
		Int("targets", len(targets)).
		Int("backups", len(result.Backups)).
		Msg("Command finished")
	return result, nil
}

// listBackups collects the backup directories sitting next to configPath,
// newest first. Entries whose suffix does not parse with the backup
// timestamp layout are some other directory that happens to share the
// prefix and are left out.
func listBackups(fsys types.FS, configPath, layout string) ([]types.BackupInfo, error) {
	log := logging.GetLogger("commands.backups")

	parent := filepath.Dir(configPath)
	prefix := filepath.Base(configPath) + backupInfix

	entries, err := fsys.ReadDir(parent)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultAccess,
			"failed to read vault directory %s", parent)
	}

	var backups []types.BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		stamp := strings.TrimPrefix(entry.Name(), prefix)
		ts, err := time.ParseInLocation(layout, stamp, time.Local)
		if err != nil {
			log.Debug().
				Str("entry", entry.Name()).
				Msg("Sibling directory does not carry a backup timestamp")
			continue
		}

		path := filepath.Join(parent, entry.Name())
		files, size, err := treeStats(fsys, path)
		if err != nil {
			return nil, err
		}

		backups = append(backups, types.BackupInfo{
			Path:      path,
			Target:    configPath,
			Timestamp: ts,
			SizeBytes: size,
			Files:     files,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// treeStats walks root and totals its regular files and their bytes.
func treeStats(fsys types.FS, root string) (int, int64, error) {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return 0, 0, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read backup directory %s", root)
	}

	files := 0
	var size int64
	for _, entry := range entries {
		if entry.IsDir() {
			subFiles, subSize, err := treeStats(fsys, filepath.Join(root, entry.Name()))
			if err != nil {
				return 0, 0, err
			}
			files += subFiles
			size += subSize
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, 0, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to stat %s", filepath.Join(root, entry.Name()))
		}
		files++
		size += info.Size()
	}
	return files, size, nil
}
