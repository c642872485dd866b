package config

// VaultConfig holds per-vault settings read from a vault's odot.toml.
// All fields are optional; the zero value means "no overrides".
type VaultConfig struct {
	// Skip excludes this vault from installs while keeping it visible in list output
	Skip bool `toml:"skip"`

	// Notes overrides the [notes] section for this vault
	Notes NotesOverride `toml:"notes"`
}

// NotesOverride holds the per-vault subset of note settings
type NotesOverride struct {
	Extension string `toml:"extension"`
}

// NoteExtension returns the vault's note extension, falling back to the
// run-wide default when the vault does not override it.
func (vc *VaultConfig) NoteExtension(fallback string) string {
	if vc.Notes.Extension != "" {
		return vc.Notes.Extension
	}
	return fallback
}
