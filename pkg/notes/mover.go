package notes

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// EnsureBucket creates the bucket directory under vaultDir if it does not
// exist yet, returning its path.
func EnsureBucket(fs types.FS, vaultDir, bucket string) (string, error) {
	dir := filepath.Join(vaultDir, bucket)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create bucket directory %s", dir)
	}
	return dir, nil
}

// FreeName returns the first available destination path in destDir,
// starting with name and inserting an incrementing (N) marker before the
// extension while the candidate exists on disk or appears in taken. A nil
// taken map only probes the filesystem.
func FreeName(fs types.FS, destDir, name string, taken map[string]bool) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	dest := filepath.Join(destDir, name)
	for n := 1; ; n++ {
		if !taken[dest] {
			if _, err := fs.Stat(dest); err != nil {
				return dest
			}
		}
		dest = filepath.Join(destDir, fmt.Sprintf("%s(%d)%s", stem, n, ext))
	}
}

// MoveWithoutClobber renames src to destDir/name. When the destination
// already exists, an incrementing (N) marker is inserted before the
// extension until a free name is found. Returns the path the file ended
// up at.
func MoveWithoutClobber(fs types.FS, src, destDir, name string) (string, error) {
	dest := FreeName(fs, destDir, name, nil)
	if err := fs.Rename(src, dest); err != nil {
		return "", errors.Wrapf(err, errors.ErrNoteMove,
			"failed to move %s to %s", src, dest)
	}
	return dest, nil
}
