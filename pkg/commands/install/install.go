// Package install implements the install command: back up each target
// config directory, then copy the source config over it.
package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/recule556688/obsidian-dotfiles/pkg/config"
	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/filesystem"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/synthfs"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
	"github.com/recule556688/obsidian-dotfiles/pkg/vaults"
)

// Options defines the options for the Install command.
type Options struct {
	// TargetPaths are explicit vault or config directory paths. When set,
	// discovery and the interactive prompt are skipped.
	TargetPaths []string
	// SourceConfig overrides the source config directory. Empty means
	// <source root>/<config dir name>.
	SourceConfig string
	// SearchRoot is the directory discovery searches below in local mode.
	// Empty means the current directory.
	SearchRoot string
	// SystemWide searches the whole filesystem for targets.
	SystemWide bool
	// SkipBackup disables the timestamped backup of each target.
	SkipBackup bool
	// Force installs to every target without prompting and ignores
	// .odotignore markers.
	Force bool
	// Quiet suppresses informational notices on Output.
	Quiet bool
	// DryRun logs the plan without touching the filesystem.
	DryRun bool
	// Input and Output carry the interactive selection prompt.
	// Nil means stdin and stdout.
	Input  io.Reader
	Output io.Writer
	// FS is used for discovery and planning. Execution always runs against
	// the operating system filesystem.
	FS types.FS
}

// Install copies the source config directory into each selected target,
// creating a timestamped sibling backup of the target first. Targets fail
// independently: an execution error is recorded on its target and the
// remaining targets still run.
func Install(opts Options) (*types.InstallResult, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "Install").Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	input := opts.Input
	if input == nil {
		input = os.Stdin
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
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

	source := paths.ExpandHome(opts.SourceConfig)
	if source == "" {
		if p.UsedFallback() {
			log.Warn().
				Str("sourceRoot", p.SourceRoot()).
				Msg("No source root configured, using current directory")
		}
		source = p.SourceConfigPath(cfg.Search.ConfigDirName)
	}
	source, err = filepath.Abs(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"invalid source config path: %s", opts.SourceConfig)
	}

	info, err := fsys.Stat(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound,
			"source config directory not found: %s", source)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrSourceInvalid, "source config path is not a directory").
			WithDetail("path", source)
	}

	warnings := checkSourceJSON(fsys, source)
	for _, w := range warnings {
		log.Warn().Str("file", w).Msg("Source JSON file does not parse")
	}

	result := &types.InstallResult{
		SourceConfig: source,
		Warnings:     warnings,
		DryRun:       opts.DryRun,
	}

	inst := &installer{
		fsys:   fsys,
		cfg:    cfg,
		source: source,
		opts:   opts,
		logger: log,
		now:    time.Now(),
	}

	selected, skipped, err := inst.resolveTargets(input, output)
	if err != nil {
		return nil, err
	}
	result.Targets = append(result.Targets, skipped...)

	if len(selected) == 0 && len(skipped) == 0 {
		if !opts.Quiet {
			if inst.prompted {
				fmt.Fprintln(output, "Nothing selected.")
			} else {
				fmt.Fprintln(output, "No vaults found.")
			}
		}
		log.Info().Str("command", "Install").Msg("Command finished, nothing to install")
		return result, nil
	}

	log.Debug().
		Strs("vaults", vaults.Names(selected)).
		Msg("Installing to selected vaults")
	for _, vault := range selected {
		result.Targets = append(result.Targets, inst.installOne(vault))
	}

	log.Info().
		Int("targets", len(result.Targets)).
		Str("command", "Install").
		Msg("Command finished")
	return result, nil
}

// installer carries the resolved dependencies of one install run.
type installer struct {
	fsys     types.FS
	cfg      *config.Config
	source   string
	opts     Options
	logger   zerolog.Logger
	now      time.Time
	prompted bool
}

// resolveTargets turns the options into the list of vaults to install to.
// Explicit target paths are resolved directly; otherwise discovery runs
// and, for more than one hit, the interactive prompt narrows the list.
// Ignored vaults are dropped unless Force is set; explicitly named ones
// are reported as skipped.
func (in *installer) resolveTargets(input io.Reader, output io.Writer) ([]types.Vault, []types.InstallTarget, error) {
	if len(in.opts.TargetPaths) > 0 {
		var selected []types.Vault
		var skipped []types.InstallTarget
		for _, path := range in.opts.TargetPaths {
			vault, err := vaults.Resolve(paths.ExpandHome(path), in.cfg.Search.ConfigDirName, in.fsys)
			if err != nil {
				return nil, nil, err
			}
			if filepath.Clean(vault.ConfigPath) == filepath.Clean(in.source) {
				return nil, nil, errors.New(errors.ErrInvalidInput,
					"target is the source config directory").
					WithDetail("path", path)
			}
			if vault.Ignored && !in.opts.Force {
				in.logger.Info().
					Str("vault", vault.Name).
					Msg("Skipping ignored vault")
				skipped = append(skipped, types.InstallTarget{
					Path:    vault.ConfigPath,
					Status:  "skipped",
					Message: "vault is marked ignored",
				})
				continue
			}
			selected = append(selected, *vault)
		}
		return selected, skipped, nil
	}

	res, err := vaults.Discover(vaults.DiscoverOptions{
		Root:          paths.ExpandHome(in.opts.SearchRoot),
		SystemWide:    in.opts.SystemWide,
		SourceConfig:  in.source,
		MaxResults:    in.cfg.Search.MaxResults,
		DenyList:      in.cfg.Search.DenyList,
		ConfigDirName: in.cfg.Search.ConfigDirName,
		FS:            in.fsys,
	})
	if err != nil {
		return nil, nil, err
	}
	if res.Truncated && !in.opts.Quiet {
		fmt.Fprintf(output, "Warning: vault search stopped after %d results\n",
			in.cfg.Search.MaxResults)
	}

	candidates := make([]types.Vault, 0, len(res.Vaults))
	for _, vault := range res.Vaults {
		if vault.Ignored && !in.opts.Force {
			in.logger.Debug().
				Str("vault", vault.Name).
				Msg("Excluding ignored vault from installation")
			continue
		}
		candidates = append(candidates, vault)
	}

	if in.opts.Force || len(candidates) <= 1 {
		return candidates, nil, nil
	}

	in.prompted = true
	selected, err := vaults.PromptSelection(input, output, candidates)
	if err != nil {
		return nil, nil, err
	}
	return selected, nil, nil
}

// installOne backs up and installs a single target config directory.
func (in *installer) installOne(vault types.Vault) types.InstallTarget {
	target := types.InstallTarget{Path: vault.ConfigPath}

	backupPath := ""
	if !in.opts.SkipBackup {
		backupPath = vault.ConfigPath + ".backup-" + in.now.Format(in.cfg.Install.BackupTimestamp)
		if _, err := in.fsys.Stat(backupPath); err == nil {
			err := errors.New(errors.ErrBackupCreate, "backup path already exists").
				WithDetail("path", backupPath)
			in.logger.Error().Err(err).Str("vault", vault.Name).Msg("Install failed")
			target.Status = "error"
			target.Message = err.Error()
			return target
		}
		target.BackupPath = backupPath
	}

	pl, err := buildPlan(in.fsys, in.source, vault.ConfigPath, backupPath)
	if err != nil {
		in.logger.Error().Err(err).Str("vault", vault.Name).Msg("Failed to plan install")
		target.Status = "error"
		target.Message = err.Error()
		return target
	}

	allowed := []string{vault.ConfigPath}
	if backupPath != "" {
		allowed = append(allowed, backupPath)
	}
	executor := synthfs.NewExecutor(in.opts.DryRun, allowed...).EnableOverwrite(true)
	if err := executor.ExecutePhases(pl.Phases); err != nil {
		in.logger.Error().Err(err).Str("vault", vault.Name).Msg("Install failed")
		target.Status = "error"
		target.Message = err.Error()
		return target
	}

	target.FilesCopied = pl.FilesCopied
	target.BytesCopied = pl.BytesCopied
	target.Status = "installed"
	in.logger.Info().
		Str("vault", vault.Name).
		Str("backup", backupPath).
		Int("files", pl.FilesCopied).
		Bool("dryRun", in.opts.DryRun).
		Msg("Installed config")
	return target
}
