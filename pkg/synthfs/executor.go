package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// Executor runs planned operations through synthfs
type Executor struct {
	logger     zerolog.Logger
	dryRun     bool
	overwrite  bool
	filesystem synthfs.FileSystem
	allowed    []string
}

// Phase is a named group of operations executed as one pipeline. A failed
// phase stops the phases after it from running.
type Phase struct {
	Name string
	Ops  []types.Operation
}

// NewExecutor creates a synthfs-backed executor. Operations may only
// touch paths below one of the allowed roots.
func NewExecutor(dryRun bool, allowedRoots ...string) *Executor {
	return &Executor{
		logger:     logging.GetLogger("synthfs.executor"),
		dryRun:     dryRun,
		filesystem: filesystem.NewOSFileSystem("/"), // Use root filesystem
		allowed:    allowedRoots,
	}
}

// EnableOverwrite enables or disables overwrite mode. synthfs refuses to
// create files over existing ones, so in overwrite mode existing targets
// of copy and write operations are removed before the pipeline runs.
func (e *Executor) EnableOverwrite(overwrite bool) *Executor {
	e.overwrite = overwrite
	return e
}

// ExecutePhases runs each phase as its own pipeline in order, stopping at
// the first failure.
func (e *Executor) ExecutePhases(phases []Phase) error {
	for _, phase := range phases {
		if len(phase.Ops) == 0 {
			continue
		}
		e.logger.Debug().
			Str("phase", phase.Name).
			Int("count", len(phase.Ops)).
			Msg("Executing phase")
		if err := e.ExecuteOperations(phase.Ops); err != nil {
			return errors.Wrapf(err, errors.ErrInstallExecute,
				"failed to execute %s phase", phase.Name)
		}
	}
	return nil
}

// ExecuteOperations executes a list of operations as one synthfs pipeline.
// Operations whose status is not ready are skipped.
func (e *Executor) ExecuteOperations(ops []types.Operation) error {
	if e.dryRun {
		e.logger.Info().Msg("Dry run mode - operations would be executed:")
		for _, op := range ops {
			if op.Status == types.StatusReady {
				e.logOperation(op)
			}
		}
		return nil
	}

	if e.overwrite {
		e.removeExistingTargets(ops)
	}

	synthOps := make([]synthfs.Operation, 0, len(ops))
	for _, op := range ops {
		if op.Status != types.StatusReady {
			e.logger.Debug().
				Str("type", string(op.Type)).
				Str("target", op.Target).
				Str("status", string(op.Status)).
				Msg("Skipping operation with non-ready status")
			continue
		}

		synthOp, err := e.convertOperation(op)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInstallExecute,
				"failed to convert operation: %s", op.Description)
		}
		if synthOp != nil {
			synthOps = append(synthOps, synthOp)
		}
	}

	if len(synthOps) == 0 {
		e.logger.Info().Msg("No operations to execute")
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range synthOps {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrInstallExecute,
				"failed to add operation to pipeline")
		}
	}

	ctx := context.Background()
	executor := synthfs.NewExecutor()

	e.logger.Info().Int("operationCount", len(synthOps)).Msg("Executing operations")

	result := executor.Run(ctx, pipeline, e.filesystem)
	if result.GetError() != nil {
		e.logger.Error().Err(result.GetError()).Msg("Pipeline execution failed")
		return errors.Wrapf(result.GetError(), errors.ErrInstallExecute,
			"failed to execute operations")
	}

	e.logger.Info().Msg("All operations executed successfully")
	return nil
}

// removeExistingTargets clears the way for copy and write operations in
// overwrite mode. Removal failures are logged and left for the pipeline
// to surface.
func (e *Executor) removeExistingTargets(ops []types.Operation) {
	for _, op := range ops {
		if op.Status != types.StatusReady {
			continue
		}
		if op.Type != types.OperationCopyFile && op.Type != types.OperationWriteFile {
			continue
		}
		if err := e.validateSafePath(op.Target); err != nil {
			continue
		}
		if _, err := os.Lstat(op.Target); err == nil {
			e.logger.Debug().
				Str("target", op.Target).
				Msg("Removing existing file to allow overwrite")
			if err := os.Remove(op.Target); err != nil {
				e.logger.Warn().
					Err(err).
					Str("target", op.Target).
					Msg("Failed to remove existing file")
			}
		}
	}
}

// convertOperation converts a planned operation to a synthfs operation
func (e *Executor) convertOperation(op types.Operation) (synthfs.Operation, error) {
	switch op.Type {
	case types.OperationCreateDir:
		return e.convertCreateDir(op)
	case types.OperationCopyFile:
		return e.convertCopyFile(op)
	case types.OperationWriteFile:
		return e.convertWriteFile(op)
	case types.OperationDeleteFile:
		return e.convertDeleteFile(op)
	case types.OperationMoveFile:
		// Moves run directly through the filesystem layer, not synthfs
		e.logger.Debug().
			Str("source", op.Source).
			Str("target", op.Target).
			Msg("Skipping move operation in synthfs (handled separately)")
		return nil, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unsupported operation type: %s", op.Type)
	}
}

// convertCreateDir converts a create directory operation
func (e *Executor) convertCreateDir(op types.Operation) (synthfs.Operation, error) {
	if op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"create directory operation requires target")
	}

	if err := e.validateSafePath(op.Target); err != nil {
		return nil, err
	}

	mode := os.FileMode(0755)
	if op.Mode != nil {
		mode = os.FileMode(*op.Mode)
	}

	e.logger.Debug().
		Str("target", op.Target).
		Str("mode", mode.String()).
		Msg("Creating directory operation")

	// synthfs works with paths relative to its filesystem root
	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", op.Target))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: mode,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

// convertCopyFile converts a copy file operation
func (e *Executor) convertCopyFile(op types.Operation) (synthfs.Operation, error) {
	if op.Source == "" || op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"copy file operation requires source and target")
	}

	if err := e.validateSafePath(op.Target); err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("source", op.Source).
		Str("target", op.Target).
		Msg("Creating copy file operation")

	relSource, err := filepath.Rel("/", op.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert source path: %s", op.Source)
	}
	relTarget, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert target path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("copy-%s-to-%s", filepath.Base(op.Source), op.Target))
	copyOp := operations.NewCopyOperation(opID, relTarget)
	copyOp.SetPaths(relSource, relTarget)

	return synthfs.NewOperationsPackageAdapter(copyOp), nil
}

// convertWriteFile converts a write file operation
func (e *Executor) convertWriteFile(op types.Operation) (synthfs.Operation, error) {
	if op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"write file operation requires target")
	}

	if err := e.validateSafePath(op.Target); err != nil {
		return nil, err
	}

	mode := os.FileMode(0644)
	if op.Mode != nil {
		mode = os.FileMode(*op.Mode)
	}

	e.logger.Debug().
		Str("target", op.Target).
		Str("mode", mode.String()).
		Int("contentLen", len(op.Content)).
		Msg("Creating write file operation")

	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("write-file-%s", op.Target))
	createOp := operations.NewCreateFileOperation(opID, relPath)
	createOp.SetItem(&fileItem{
		path:    relPath,
		content: []byte(op.Content),
		mode:    mode,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

// convertDeleteFile converts a delete file operation
func (e *Executor) convertDeleteFile(op types.Operation) (synthfs.Operation, error) {
	if op.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"delete file operation requires target")
	}

	if err := e.validateSafePath(op.Target); err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("target", op.Target).
		Msg("Creating delete file operation")

	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("delete-%s", op.Target))
	deleteOp := operations.NewDeleteOperation(opID, relPath)

	return synthfs.NewOperationsPackageAdapter(deleteOp), nil
}

// validateSafePath ensures the path stays below one of the allowed roots
func (e *Executor) validateSafePath(path string) error {
	if len(e.allowed) == 0 {
		return errors.New(errors.ErrInternal,
			"executor has no allowed roots")
	}

	normalizedPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to normalize path: %s", path)
	}

	for _, root := range e.allowed {
		if isPathWithin(normalizedPath, root) {
			e.logger.Trace().
				Str("path", normalizedPath).
				Str("root", root).
				Msg("Path validated as safe")
			return nil
		}
	}

	return errors.Newf(errors.ErrPermission,
		"operation target is outside the allowed roots: %s", path)
}

// isPathWithin checks if a path is within a parent directory
func isPathWithin(path, parent string) bool {
	path = filepath.Clean(path)
	parent = filepath.Clean(parent)

	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}

	// A relative path starting with ".." escapes the parent
	return !strings.HasPrefix(rel, "..") && !strings.HasPrefix(rel, "/")
}

// logOperation logs details about an operation
func (e *Executor) logOperation(op types.Operation) {
	logger := e.logger.With().
		Str("type", string(op.Type)).
		Str("description", op.Description).
		Logger()

	switch op.Type {
	case types.OperationCreateDir:
		logger.Info().
			Str("target", op.Target).
			Msg("Would create directory")
	case types.OperationCopyFile:
		logger.Info().
			Str("source", op.Source).
			Str("target", op.Target).
			Msg("Would copy file")
	case types.OperationMoveFile:
		logger.Info().
			Str("source", op.Source).
			Str("target", op.Target).
			Msg("Would move file")
	case types.OperationWriteFile:
		logger.Info().
			Str("target", op.Target).
			Int("contentLen", len(op.Content)).
			Msg("Would write file")
	case types.OperationDeleteFile:
		logger.Info().
			Str("target", op.Target).
			Msg("Would delete file")
	default:
		logger.Info().Msg("Would execute operation")
	}
}

// Item types for synthfs operations

// fileItem implements the interface needed for file operations
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem implements the interface needed for directory operations
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
