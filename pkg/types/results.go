package types

import "time"

// ListVaultsResult holds the result of the 'list' command.
type ListVaultsResult struct {
	Vaults    []VaultInfo `json:"vaults"`
	Truncated bool        `json:"truncated"`
}

// VaultInfo contains summary information about a single vault.
type VaultInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Ignored bool   `json:"ignored"`
}

// InstallResult holds the result of the 'install' command.
type InstallResult struct {
	SourceConfig string          `json:"sourceConfig"`
	Targets      []InstallTarget `json:"targets"`
	Warnings     []string        `json:"warnings,omitempty"`
	DryRun       bool            `json:"dryRun"`
}

// InstallTarget describes the outcome for a single target config directory.
type InstallTarget struct {
	Path        string `json:"path"`
	BackupPath  string `json:"backupPath,omitempty"`
	FilesCopied int    `json:"filesCopied"`
	BytesCopied int64  `json:"bytesCopied"`
	Status      string `json:"status"` // "installed", "skipped", "error"
	Message     string `json:"message,omitempty"`
}

// OrganizeResult holds the result of the 'organize' command.
type OrganizeResult struct {
	VaultPath     string       `json:"vaultPath"`
	Moved         []MovedNote  `json:"moved"`
	Skipped       []string     `json:"skipped"`
	HeadingsFixed int          `json:"headingsFixed"`
	Errors        []string     `json:"errors"`
	Buckets       []BucketInfo `json:"buckets"`
	Cancelled     bool         `json:"cancelled,omitempty"`
	DryRun        bool         `json:"dryRun"`
}

// MovedNote describes one note that was moved into its bucket.
type MovedNote struct {
	Name   string `json:"name"`
	Bucket string `json:"bucket"`
	Dest   string `json:"dest"`
}

// BucketInfo summarizes one YYYY-MM folder after organizing.
type BucketInfo struct {
	Name  string `json:"name"`
	Files int    `json:"files"`
}

// LinkResult holds the result of the 'link' command.
type LinkResult struct {
	VaultPath string       `json:"vaultPath"`
	Linked    []LinkedNote `json:"linked"`
	Skipped   int          `json:"skipped"`
	Errors    []string     `json:"errors,omitempty"`
	DryRun    bool         `json:"dryRun"`
}

// LinkedNote records one note that received a next-note link.
type LinkedNote struct {
	Name string `json:"name"`
	Next string `json:"next"`
}

// BackupsResult holds the result of the 'backups' command.
type BackupsResult struct {
	Backups []BackupInfo `json:"backups"`
}

// BackupInfo describes one backup directory next to a target config dir.
type BackupInfo struct {
	Path      string    `json:"path"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
	SizeBytes int64     `json:"sizeBytes"`
	Files     int       `json:"files"`
}

// GenConfigResult holds the result of the 'genconfig' command.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}
