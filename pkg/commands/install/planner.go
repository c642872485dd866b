package install

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/synthfs"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// plan is the ordered work for one target config directory.
type plan struct {
	BackupPath  string
	Phases      []synthfs.Phase
	FilesCopied int
	BytesCopied int64
}

// buildPlan assembles the backup and install phases for one target. An
// empty backupPath skips the backup phase. Directories that already exist
// in the target are planned as skipped; a target path occupied by a file
// where a directory is needed is planned as a conflict.
func buildPlan(fsys types.FS, sourceConfig, targetConfig, backupPath string) (*plan, error) {
	pl := &plan{BackupPath: backupPath}

	if backupPath != "" {
		dirs, files, err := collectTree(fsys, targetConfig)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrBackupCreate,
				"failed to scan target config %s", targetConfig)
		}

		ops := make([]types.Operation, 0, len(dirs)+len(files)+1)
		ops = append(ops, types.Operation{
			Type:        types.OperationCreateDir,
			Target:      backupPath,
			Description: "create backup directory",
			Status:      types.StatusReady,
		})
		for _, dir := range dirs {
			ops = append(ops, types.Operation{
				Type:        types.OperationCreateDir,
				Target:      filepath.Join(backupPath, dir),
				Description: "create backup directory " + dir,
				Status:      types.StatusReady,
			})
		}
		for _, file := range files {
			ops = append(ops, types.Operation{
				Type:        types.OperationCopyFile,
				Source:      filepath.Join(targetConfig, file.rel),
				Target:      filepath.Join(backupPath, file.rel),
				Description: "back up " + file.rel,
				Status:      types.StatusReady,
			})
		}
		pl.Phases = append(pl.Phases, synthfs.Phase{Name: "backup", Ops: ops})
	}

	dirs, files, err := collectTree(fsys, sourceConfig)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceInvalid,
			"failed to scan source config %s", sourceConfig)
	}

	ops := make([]types.Operation, 0, len(dirs)+len(files))
	for _, dir := range dirs {
		op := types.Operation{
			Type:        types.OperationCreateDir,
			Target:      filepath.Join(targetConfig, dir),
			Description: "create directory " + dir,
			Status:      types.StatusReady,
		}
		if info, err := fsys.Stat(op.Target); err == nil {
			if info.IsDir() {
				op.Status = types.StatusSkipped
			} else {
				op.Status = types.StatusConflict
			}
		}
		ops = append(ops, op)
	}
	for _, file := range files {
		ops = append(ops, types.Operation{
			Type:        types.OperationCopyFile,
			Source:      filepath.Join(sourceConfig, file.rel),
			Target:      filepath.Join(targetConfig, file.rel),
			Description: "copy " + file.rel,
			Status:      types.StatusReady,
		})
		pl.FilesCopied++
		pl.BytesCopied += file.size
	}
	pl.Phases = append(pl.Phases, synthfs.Phase{Name: "install", Ops: ops})

	return pl, nil
}

// treeFile is one file in a config tree, relative to the tree root.
type treeFile struct {
	rel  string
	size int64
}

// collectTree returns the subdirectories and files below root in walk
// order, parents before children.
func collectTree(fsys types.FS, root string) ([]string, []treeFile, error) {
	var dirs []string
	var files []treeFile

	var scan func(rel string) error
	scan = func(rel string) error {
		entries, err := fsys.ReadDir(filepath.Join(root, rel))
		if err != nil {
			return err
		}
		for _, entry := range entries {
			childRel := entry.Name()
			if rel != "" {
				childRel = filepath.Join(rel, entry.Name())
			}
			if entry.IsDir() {
				dirs = append(dirs, childRel)
				if err := scan(childRel); err != nil {
					return err
				}
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return err
			}
			files = append(files, treeFile{rel: childRel, size: info.Size()})
		}
		return nil
	}

	if err := scan(""); err != nil {
		return nil, nil, err
	}
	return dirs, files, nil
}

// checkSourceJSON returns the relative paths of .json files under
// sourceConfig whose content does not parse as JSON. Unreadable files are
// left for the install itself to report.
func checkSourceJSON(fsys types.FS, sourceConfig string) []string {
	_, files, err := collectTree(fsys, sourceConfig)
	if err != nil {
		return nil
	}

	var warnings []string
	for _, file := range files {
		if !strings.EqualFold(filepath.Ext(file.rel), ".json") {
			continue
		}
		data, err := fsys.ReadFile(filepath.Join(sourceConfig, file.rel))
		if err != nil {
			continue
		}
		if !json.Valid(data) {
			warnings = append(warnings, file.rel)
		}
	}
	return warnings
}
