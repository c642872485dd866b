package vaults

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/recule556688/obsidian-dotfiles/pkg/filesystem"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// IgnoreChecker reports whether vaults carry an .odotignore marker
type IgnoreChecker struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewIgnoreChecker creates a new IgnoreChecker backed by the given
// filesystem. A nil filesystem means the operating system.
func NewIgnoreChecker(fs types.FS) *IgnoreChecker {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &IgnoreChecker{
		fs:     fs,
		logger: logging.GetLogger("vaults.ignore"),
	}
}

// HasIgnoreFile checks if a directory contains an .odotignore file
func (ic *IgnoreChecker) HasIgnoreFile(dirPath string) bool {
	ignoreFilePath := filepath.Join(dirPath, paths.IgnoreFile)
	if _, err := ic.fs.Stat(ignoreFilePath); err == nil {
		return true
	}
	return false
}

// ShouldIgnoreVault checks if a vault should be skipped due to an
// .odotignore file in its config directory
func (ic *IgnoreChecker) ShouldIgnoreVault(configPath string) bool {
	if ic.HasIgnoreFile(configPath) {
		ic.logger.Debug().
			Str("vault", filepath.Base(filepath.Dir(configPath))).
			Msg("Vault ignored due to .odotignore file")
		return true
	}
	return false
}
