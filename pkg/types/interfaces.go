package types

import (
	"io/fs"
)

// FS is the filesystem interface required for odot operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Move operations
	Rename(oldpath, newpath string) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// Pather provides paths for odot operations
type Pather interface {
	// SourceRoot returns the vault holding the canonical config
	SourceRoot() string

	// DataDir returns the XDG data directory for odot
	DataDir() string

	// ConfigDir returns the XDG config directory for odot
	ConfigDir() string

	// CacheDir returns the XDG cache directory for odot
	CacheDir() string
}
