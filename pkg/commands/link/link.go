// Package link implements the link command: chain daily notes
// chronologically by appending a Next wiki link to each one.
package link

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/recule556688/obsidian-dotfiles/pkg/config"
	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/filesystem"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/notes"
	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
	"github.com/recule556688/obsidian-dotfiles/pkg/vaults"
)

// Link scopes.
const (
	// ScopeVault chains every dated note in the vault into one sequence.
	ScopeVault = "vault"
	// ScopeFolder chains the notes inside each YYYY-MM folder separately.
	ScopeFolder = "folder"
)

// Options defines the options for the Link command.
type Options struct {
	// VaultPath is the directory whose notes are linked. Empty means the
	// current working directory.
	VaultPath string
	// Scope selects vault-wide or per-folder chaining. Empty means vault.
	Scope string
	// Quiet suppresses informational notices on Output.
	Quiet bool
	// DryRun reports which notes would gain a link without writing.
	DryRun bool
	// Output receives progress messages. Nil means stdout.
	Output io.Writer
	// FS is the filesystem the command runs against. Nil means the
	// operating system filesystem.
	FS types.FS
}

// Link appends a "Next" footer pointing at the chronologically following
// note to every dated note except the last of its chain. Notes already
// carrying the link are skipped, so repeat runs change nothing.
func Link(opts Options) (*types.LinkResult, error) {
	log := logging.GetLogger("commands.link")
	log.Debug().Str("command", "Link").Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	scope := opts.Scope
	if scope == "" {
		scope = ScopeVault
	}
	if scope != ScopeVault && scope != ScopeFolder {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unknown link scope %q, expected %s or %s", opts.Scope, ScopeVault, ScopeFolder)
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
	ext := cfg.Notes.Extension
	if ext == "" {
		ext = ".md"
	}

	dir := paths.ExpandHome(opts.VaultPath)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal,
				"failed to resolve working directory")
		}
		dir = wd
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"invalid vault path: %s", opts.VaultPath)
	}

	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultNotFound,
			"vault directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "vault path is not a directory").
			WithDetail("path", dir)
	}

	// A plain note folder has no config directory; only real vaults can
	// override the extension.
	if vault, err := vaults.Resolve(dir, cfg.Search.ConfigDirName, fsys); err == nil {
		ext = vault.Config.NoteExtension(ext)
	}

	result := &types.LinkResult{
		VaultPath: dir,
		DryRun:    opts.DryRun,
	}
	ln := &linker{fsys: fsys, opts: opts, out: output, logger: log}

	total := 0
	switch scope {
	case ScopeVault:
		dated, err := notes.CollectDated(fsys, dir, true, ext)
		if err != nil {
			return nil, err
		}
		total = len(dated)
		ln.chain(dated, result)
	case ScopeFolder:
		buckets, err := notes.BucketDirs(fsys, dir)
		if err != nil {
			return nil, err
		}
		for _, bucket := range buckets {
			dated, err := notes.CollectDated(fsys, filepath.Join(dir, bucket), false, ext)
			if err != nil {
				return nil, err
			}
			log.Debug().Str("folder", bucket).Int("notes", len(dated)).Msg("Chaining folder")
			total += len(dated)
			ln.chain(dated, result)
		}
	}

	if total == 0 {
		if !opts.Quiet {
			fmt.Fprintln(output, "No dated notes found.")
		}
		log.Info().Str("vault", dir).Str("scope", scope).Msg("Nothing to link")
		return result, nil
	}

	log.Info().
		Str("vault", dir).
		Str("scope", scope).
		Int("notes", total).
		Int("linked", len(result.Linked)).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Bool("dryRun", opts.DryRun).
		Msg("Link complete")

	return result, nil
}

type linker struct {
	fsys   types.FS
	opts   Options
	out    io.Writer
	logger zerolog.Logger
}

// chain links each note to its successor. The chronologically last note of
// a chain has no successor and counts as skipped, as does a note that
// already carries the link. Write failures are recorded and the chain
// continues.
func (ln *linker) chain(dated []notes.DatedNote, result *types.LinkResult) {
	for i, note := range dated {
		if i == len(dated)-1 {
			ln.logger.Debug().Str("note", note.Stem).Msg("Last note of the chain")
			result.Skipped++
			continue
		}

		next := dated[i+1]
		linked, err := ln.linkOne(note, next)
		if err != nil {
			ln.logger.Error().Err(err).Str("file", note.Path).Msg("Failed to add link")
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if !linked {
			result.Skipped++
			continue
		}

		result.Linked = append(result.Linked, types.LinkedNote{Name: note.Stem, Next: next.Stem})
		if !ln.opts.Quiet {
			fmt.Fprintf(ln.out, "Linked %q to %q\n", note.Stem, next.Stem)
		}
	}
}

// linkOne appends the footer, or in dry-run mode only reports whether it
// would.
func (ln *linker) linkOne(note, next notes.DatedNote) (bool, error) {
	if ln.opts.DryRun {
		content, err := ln.fsys.ReadFile(note.Path)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to read note %s", note.Path)
		}
		return !notes.HasLinkTo(content, next.Stem), nil
	}
	return notes.AppendNextLink(ln.fsys, note, next)
}
