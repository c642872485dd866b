// Package organize implements the organize command: sort dated daily
// notes into YYYY-MM bucket folders, fixing missing markdown headings on
// the way.
package organize

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

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

// Options defines the options for the Organize command.
type Options struct {
	// VaultPath is the directory whose notes are organized. Empty means
	// the current working directory.
	VaultPath string
	// Force skips the confirmation prompt.
	Force bool
	// Quiet suppresses informational notices on Output.
	Quiet bool
	// DryRun reports what would move without touching any file.
	DryRun bool
	// Input and Output carry the confirmation prompt. Nil means stdin
	// and stdout.
	Input  io.Reader
	Output io.Writer
	// FS is the filesystem the command runs against. Nil means the
	// operating system filesystem.
	FS types.FS
}

// Organize moves every M-D-YYYY note directly under the vault directory
// into its YYYY-MM bucket folder. Notes without a parseable date are
// skipped with a warning, and a note that does not start with a markdown
// heading gets one derived from its date before moving. Per-note move
// failures are recorded and the run continues.
func Organize(opts Options) (*types.OrganizeResult, error) {
	log := logging.GetLogger("commands.organize")
	log.Debug().Str("command", "Organize").Msg("Executing command")

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

	candidates, err := scanNotes(fsys, dir, ext)
	if err != nil {
		return nil, err
	}

	result := &types.OrganizeResult{
		VaultPath: dir,
		DryRun:    opts.DryRun,
	}

	if len(candidates) == 0 {
		if !opts.Quiet {
			fmt.Fprintln(output, "No markdown notes found.")
		}
		log.Info().Str("vault", dir).Msg("Nothing to organize")
		return result, nil
	}

	if !opts.Quiet {
		fmt.Fprintf(output, "Found %d markdown notes in %s\n", len(candidates), dir)
	}

	if !opts.Force && !opts.DryRun {
		proceed, err := confirm(input, output, "Do you want to proceed?")
		if err != nil {
			return nil, err
		}
		if !proceed {
			if !opts.Quiet {
				fmt.Fprintln(output, "Operation cancelled")
			}
			log.Info().Str("vault", dir).Msg("Organize cancelled")
			result.Cancelled = true
			return result, nil
		}
	}

	planned := make(map[string]bool)
	for _, name := range candidates {
		stem := strings.TrimSuffix(name, ext)
		date, ok := notes.ParseStem(stem)
		if !ok {
			log.Warn().Str("file", name).Msg("Filename carries no valid date, skipping")
			if !opts.Quiet {
				fmt.Fprintf(output, "Skipping %q: no date in the filename\n", name)
			}
			result.Skipped = append(result.Skipped, name)
			continue
		}

		src := filepath.Join(dir, name)
		if fixHeading(fsys, log, src, stem, opts.DryRun) {
			result.HeadingsFixed++
		}

		bucket := date.Bucket()
		bucketDir := filepath.Join(dir, bucket)

		if opts.DryRun {
			dest := notes.FreeName(fsys, bucketDir, name, planned)
			planned[dest] = true
			result.Moved = append(result.Moved, movedNote(dir, name, bucket, dest))
			continue
		}

		if _, err := notes.EnsureBucket(fsys, dir, bucket); err != nil {
			log.Error().Err(err).Str("bucket", bucket).Msg("Failed to create bucket directory")
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		dest, err := notes.MoveWithoutClobber(fsys, src, bucketDir, name)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Failed to move note")
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Moved = append(result.Moved, movedNote(dir, name, bucket, dest))
		if !opts.Quiet {
			fmt.Fprintf(output, "Moved %q to %s/\n", name, bucket)
		}
	}

	if !opts.DryRun {
		buckets, err := bucketInventory(fsys, dir, ext)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to inventory bucket folders")
		} else {
			result.Buckets = buckets
		}
	}

	log.Info().
		Str("vault", dir).
		Int("organized", len(result.Moved)).
		Int("skipped", len(result.Skipped)).
		Int("fixed", result.HeadingsFixed).
		Int("errors", len(result.Errors)).
		Bool("dryRun", opts.DryRun).
		Msg("Organize complete")

	return result, nil
}

// scanNotes lists the note files directly under dir, in name order.
// Subdirectories are not entered; organize only touches the vault root.
func scanNotes(fsys types.FS, dir, ext string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVaultAccess,
			"failed to read vault directory %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// fixHeading prepends a date heading to the note at path when its content
// does not start with one, reporting whether a heading was or would be
// added. Read and write failures only downgrade the fix: the note still
// moves, matching the soft-skip rule for everything except the move
// itself.
func fixHeading(fsys types.FS, log zerolog.Logger, path, stem string, dryRun bool) bool {
	content, err := fsys.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Cannot read note for heading check")
		return false
	}
	updated, changed := notes.FixHeading(content, stem)
	if !changed {
		return false
	}
	if dryRun {
		return true
	}
	if err := fsys.WriteFile(path, updated, 0644); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Failed to write heading fix")
		return false
	}
	return true
}

// bucketInventory counts the note files in each YYYY-MM folder directly
// under dir.
func bucketInventory(fsys types.FS, dir, ext string) ([]types.BucketInfo, error) {
	names, err := notes.BucketDirs(fsys, dir)
	if err != nil {
		return nil, err
	}

	buckets := make([]types.BucketInfo, 0, len(names))
	for _, name := range names {
		entries, err := fsys.ReadDir(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to read bucket directory %s", name)
		}
		count := 0
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
				count++
			}
		}
		buckets = append(buckets, types.BucketInfo{Name: name, Files: count})
	}
	return buckets, nil
}

// movedNote builds the result entry for one move, with the destination
// relative to the vault directory.
func movedNote(dir, name, bucket, dest string) types.MovedNote {
	rel, err := filepath.Rel(dir, dest)
	if err != nil {
		rel = dest
	}
	return types.MovedNote{Name: name, Bucket: bucket, Dest: rel}
}

// confirm asks a y/N question on output and reads one line from input.
// Closed input counts as a no.
func confirm(input io.Reader, output io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(output, "%s (y/N): ", prompt)

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrSelectionInput,
			"failed to read confirmation")
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
