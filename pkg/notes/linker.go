package notes

import (
	"bytes"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// Bucket folders created by organize
var bucketPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// DatedNote pairs a parsed date with the file it came from.
type DatedNote struct {
	Date NoteDate
	Path string
	Stem string
}

// CollectDated scans dir for notes whose stems parse as dates, descending
// into subdirectories when recursive is set. Dot directories are never
// entered; Obsidian keeps its config and trashed notes there. Dates appear
// once: an unmarked file beats its (N) copies, otherwise the first found
// wins. Results are sorted chronologically.
func CollectDated(fs types.FS, dir string, recursive bool, ext string) ([]DatedNote, error) {
	if ext == "" {
		ext = ".md"
	}

	byDate := make(map[NoteDate]DatedNote)
	marked := make(map[NoteDate]bool)

	var scan func(string) error
	scan = func(current string) error {
		entries, err := fs.ReadDir(current)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess,
				"failed to read directory %s", current)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				if recursive && !strings.HasPrefix(name, ".") {
					if err := scan(filepath.Join(current, name)); err != nil {
						return err
					}
				}
				continue
			}
			if !strings.HasSuffix(name, ext) {
				continue
			}

			stem := strings.TrimSuffix(name, ext)
			date, ok := ParseStem(stem)
			if !ok {
				continue
			}

			_, hasMarker := StripDuplicateMarker(stem)
			if _, seen := byDate[date]; seen && (hasMarker || !marked[date]) {
				continue
			}
			byDate[date] = DatedNote{
				Date: date,
				Path: filepath.Join(current, name),
				Stem: stem,
			}
			marked[date] = hasMarker
		}
		return nil
	}

	if err := scan(dir); err != nil {
		return nil, err
	}

	dated := make([]DatedNote, 0, len(byDate))
	for _, note := range byDate {
		dated = append(dated, note)
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].Date.Before(dated[j].Date)
	})
	return dated, nil
}

// NextLink returns the footer text linking a note to the next one.
func NextLink(next DatedNote) string {
	return "\n\n---\n**Next:** [[" + next.Stem + "]]"
}

// HasLinkTo reports whether content already carries a wiki link to stem.
func HasLinkTo(content []byte, stem string) bool {
	return bytes.Contains(content, []byte("[["+stem+"]]"))
}

// AppendNextLink adds a footer linking note to next unless one is already
// present. Reports whether the file was modified.
func AppendNextLink(fs types.FS, note, next DatedNote) (bool, error) {
	content, err := fs.ReadFile(note.Path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read note %s", note.Path)
	}
	if HasLinkTo(content, next.Stem) {
		return false, nil
	}

	updated := append(content, []byte(NextLink(next))...)
	if err := fs.WriteFile(note.Path, updated, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write note %s", note.Path)
	}
	return true, nil
}

// BucketDirs lists the YYYY-MM folders directly under vaultDir, sorted by
// name.
func BucketDirs(fs types.FS, vaultDir string) ([]string, error) {
	entries, err := fs.ReadDir(vaultDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read vault directory %s", vaultDir)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && bucketPattern.MatchString(entry.Name()) {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
