package odot

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recule556688/obsidian-dotfiles/pkg/testutil"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// runCommand executes the root command with the given args and stdin,
// returning what it wrote to its output writer.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if stdin != "" {
		rootCmd.SetIn(strings.NewReader(stdin))
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// findBackup returns the backup directory install left next to the
// vault's config directory, failing the test when there is none.
func findBackup(t *testing.T, vaultPath string) string {
	t.Helper()

	entries, err := os.ReadDir(vaultPath)
	require.NoError(t, err)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".obsidian.backup-") {
			return filepath.Join(vaultPath, entry.Name())
		}
	}
	t.Fatalf("no backup directory found in %s", vaultPath)
	return ""
}

// TestInstallCommandExecutesAgainstFilesystem tests that the install
// command not only plans the copy but actually executes it on disk,
// backup included.
func TestInstallCommandExecutesAgainstFilesystem(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{
		"app.json":                "{\"theme\":\"moonstone\"}",
		"plugins/daily/data.json": "{\"enabled\":true}",
	})
	vault := env.SetupVault("notes", map[string]string{
		".obsidian/app.json": "{\"theme\":\"obsidian\"}",
		"7-4-2025.md":        "note",
	})

	output, err := runCommand(t, "", "install", vault.Path, "--format", "text")
	require.NoError(t, err)

	// The target now carries the source config
	testutil.AssertFileContent(t, filepath.Join(vault.ConfigPath, "app.json"),
		"{\"theme\":\"moonstone\"}")
	testutil.AssertFileContent(t, filepath.Join(vault.ConfigPath, "plugins", "daily", "data.json"),
		"{\"enabled\":true}")

	// The backup holds the pre-install content
	backup := findBackup(t, vault.Path)
	testutil.AssertFileContent(t, filepath.Join(backup, "app.json"),
		"{\"theme\":\"obsidian\"}")

	// Notes outside the config directory are untouched
	testutil.AssertFileContent(t, filepath.Join(vault.Path, "7-4-2025.md"), "note")

	assert.Contains(t, output, "installed")
	assert.Contains(t, output, vault.ConfigPath)
	assert.Contains(t, output, "backup")
}

// TestInstallCommandDryRunDoesNotExecute tests that dry-run mode plans
// the install without touching any file.
func TestInstallCommandDryRunDoesNotExecute(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "new"})
	vault := env.SetupVault("notes", map[string]string{
		".obsidian/app.json": "old",
	})

	output, err := runCommand(t, "", "install", vault.Path, "--dry-run", "--format", "text")
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(vault.ConfigPath, "app.json"), "old")

	entries, err := os.ReadDir(vault.Path)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".backup-")
	}

	assert.Contains(t, output, "DRY RUN")
}

// TestInstallCommandNoBackup tests the --no-backup flag.
func TestInstallCommandNoBackup(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "new"})
	vault := env.SetupVault("notes", map[string]string{
		".obsidian/app.json": "old",
	})

	output, err := runCommand(t, "", "install", vault.Path, "--no-backup", "--format", "text")
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(vault.ConfigPath, "app.json"), "new")

	entries, err := os.ReadDir(vault.Path)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".backup-")
	}

	assert.NotContains(t, output, "backup")
}

// TestInstallCommandPromptSelection tests the interactive selection:
// with two discovered vaults, a "2" on stdin installs only the second.
func TestInstallCommandPromptSelection(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "new"})
	alpha := env.SetupVault("alpha", map[string]string{
		".obsidian/app.json": "old-a",
	})
	beta := env.SetupVault("beta", map[string]string{
		".obsidian/app.json": "old-b",
	})

	// Discovery runs below the working directory, so run from the root
	// that holds both vaults.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(env.Root))
	defer func() { _ = os.Chdir(wd) }()

	output, err := runCommand(t, "2\n", "install", "--format", "text")
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(beta.ConfigPath, "app.json"), "new")
	testutil.AssertFileContent(t, filepath.Join(alpha.ConfigPath, "app.json"), "old-a")

	// Both vaults were offered in the numbered list
	assert.Contains(t, output, "alpha")
	assert.Contains(t, output, "beta")
}

// TestOrganizeCommandMovesNotes tests the organize command end to end:
// dated notes move into their buckets, undated ones stay put.
func TestOrganizeCommandMovesNotes(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "{}"})
	vault := env.SetupVault("notes", map[string]string{
		"7-4-2025.md":   "fireworks",
		"12-31-2024.md": "# New Year's Eve\n\nparty",
		"ideas.md":      "no date here",
	})

	output, err := runCommand(t, "", "organize", vault.Path, "--force", "--format", "text")
	require.NoError(t, err)

	// Dated notes are in their buckets, the heading fix applied where
	// the note did not start with one
	testutil.AssertFileContent(t, filepath.Join(vault.Path, "2025-07", "7-4-2025.md"),
		"# July 4, 2025\n\nfireworks")
	testutil.AssertFileContent(t, filepath.Join(vault.Path, "2024-12", "12-31-2024.md"),
		"# New Year's Eve\n\nparty")
	testutil.AssertNoFile(t, filepath.Join(vault.Path, "7-4-2025.md"))

	// The undated note stays in the vault root
	testutil.AssertFileContent(t, filepath.Join(vault.Path, "ideas.md"), "no date here")

	assert.Contains(t, output, "moved")
	assert.Contains(t, output, "2025-07")
	assert.Contains(t, output, "ideas.md")
}

// TestOrganizeCommandDeclinedConfirmation tests that answering no to
// the confirmation prompt leaves every note in place.
func TestOrganizeCommandDeclinedConfirmation(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "{}"})
	vault := env.SetupVault("notes", map[string]string{
		"7-4-2025.md": "fireworks",
	})

	output, err := runCommand(t, "n\n", "organize", vault.Path, "--format", "text")
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(vault.Path, "7-4-2025.md"), "fireworks")
	testutil.AssertNoFile(t, filepath.Join(vault.Path, "2025-07", "7-4-2025.md"))

	assert.Contains(t, output, "cancelled")
}

// TestOrganizeCommandCollisionSuffix tests that an occupied destination
// name gets the numeric suffix instead of being overwritten.
func TestOrganizeCommandCollisionSuffix(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "{}"})
	vault := env.SetupVault("notes", map[string]string{
		"7-4-2025.md":         "# heading\n\nnew",
		"2025-07/7-4-2025.md": "already here",
	})

	_, err := runCommand(t, "", "organize", vault.Path, "--force", "--format", "text")
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(vault.Path, "2025-07", "7-4-2025.md"),
		"already here")
	testutil.AssertFileContent(t, filepath.Join(vault.Path, "2025-07", "7-4-2025(1).md"),
		"# heading\n\nnew")
}

// TestLinkCommandAppendsFooters tests the link command end to end.
func TestLinkCommandAppendsFooters(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "{}"})
	vault := env.SetupVault("notes", map[string]string{
		"7-4-2025.md": "# July 4, 2025\n\nfirst",
		"7-6-2025.md": "# July 6, 2025\n\nlast",
	})

	output, err := runCommand(t, "", "link", vault.Path, "--format", "text")
	require.NoError(t, err)

	linked := testutil.ReadFile(t, filepath.Join(vault.Path, "7-4-2025.md"))
	assert.Contains(t, linked, "**Next:** [[7-6-2025]]")

	// The newest note gets no footer
	last := testutil.ReadFile(t, filepath.Join(vault.Path, "7-6-2025.md"))
	assert.NotContains(t, last, "**Next:**")

	assert.Contains(t, output, "7-6-2025")
}

// TestBackupsCommandListsBackups tests that backups reports what a
// previous install left behind.
func TestBackupsCommandListsBackups(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "new"})
	vault := env.SetupVault("notes", map[string]string{
		".obsidian/app.json": "old",
	})

	_, err := runCommand(t, "", "install", vault.Path, "--format", "text")
	require.NoError(t, err)
	backup := findBackup(t, vault.Path)

	output, err := runCommand(t, "", "backups", vault.Path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, output, filepath.Base(backup))
}

// TestQuietSuppressesOutput tests that -q leaves stdout empty while the
// work still happens.
func TestQuietSuppressesOutput(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "new"})
	vault := env.SetupVault("notes", map[string]string{
		".obsidian/app.json": "old",
	})

	output, err := runCommand(t, "", "install", vault.Path, "-q", "--format", "text")
	require.NoError(t, err)

	assert.Empty(t, output)
	testutil.AssertFileContent(t, filepath.Join(vault.ConfigPath, "app.json"), "new")
}

// TestGenConfigCommand tests printing and writing the default config.
func TestGenConfigCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	vault := env.SetupVault("notes", nil)

	t.Run("prints to stdout without -w", func(t *testing.T) {
		output, err := runCommand(t, "", "genconfig", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, output, "[search]")
		assert.Contains(t, output, "max_results")
	})

	t.Run("writes the vault config with -w", func(t *testing.T) {
		_, err := runCommand(t, "", "genconfig", vault.Path, "-w", "--format", "text")
		require.NoError(t, err)
		testutil.AssertFileExists(t, filepath.Join(vault.ConfigPath, "odot.toml"))
	})
}

// TestInstallCommandJSONOutput tests that --format json emits the raw
// result structure.
func TestInstallCommandJSONOutput(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "new"})
	vault := env.SetupVault("notes", map[string]string{
		".obsidian/app.json": "old",
	})

	output, err := runCommand(t, "", "install", vault.Path, "--no-backup", "--format", "json")
	require.NoError(t, err)

	var result types.InstallResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	require.Len(t, result.Targets, 1)
	assert.Equal(t, "installed", result.Targets[0].Status)
	assert.Equal(t, vault.ConfigPath, result.Targets[0].Path)
	assert.Equal(t, 1, result.Targets[0].FilesCopied)
}

func TestRootCommandWithoutSubcommand(t *testing.T) {
	output, err := runCommand(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")

	// Help was shown before the error
	assert.Contains(t, output, "odot")
	assert.Contains(t, output, "install")
}

func TestUnknownFormatIsAnError(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.SetupSource(map[string]string{"app.json": "{}"})

	_, err := runCommand(t, "", "list", env.Root, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, output, "odot version")
	assert.Contains(t, output, "commit:")
}

func TestCommandGroups(t *testing.T) {
	rootCmd := NewRootCmd()

	groups := map[string]string{
		"install":   "core",
		"list":      "core",
		"organize":  "core",
		"link":      "core",
		"backups":   "misc",
		"genconfig": "misc",
		"version":   "misc",
		"topics":    "misc",
	}

	found := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		if want, ok := groups[cmd.Name()]; ok {
			assert.Equal(t, want, cmd.GroupID, "group of %s", cmd.Name())
			found[cmd.Name()] = true
		}
	}
	for name := range groups {
		assert.True(t, found[name], "command %s should exist", name)
	}
}
