package genconfig

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/testutil"
)

func TestGenConfig(t *testing.T) {
	t.Run("returns the commented template without writing", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		result, err := GenConfig(Options{FS: env.FS})

		require.NoError(t, err)
		assert.Contains(t, result.ConfigContent, "[search]")
		assert.Contains(t, result.ConfigContent, "[install]")
		assert.Contains(t, result.ConfigContent, "[notes]")
		assert.Empty(t, result.FilesWritten)

		// Every value line must be commented out
		for _, line := range strings.Split(result.ConfigContent, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
				(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
				continue
			}
			assert.Fail(t, "Found uncommented configuration line", "Line: %s", line)
		}
	})

	t.Run("writes the user config file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		result, err := GenConfig(Options{Write: true, FS: env.FS})

		require.NoError(t, err)
		require.Len(t, result.FilesWritten, 1)

		path := result.FilesWritten[0]
		assert.Equal(t, env.Paths.ConfigFilePath(), path)

		content, err := env.FS.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "# config_dir_name")
	})

	t.Run("leaves an existing user config alone", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		path := env.Paths.ConfigFilePath()
		require.NoError(t, env.FS.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, env.FS.WriteFile(path, []byte("# mine\n"), 0644))

		result, err := GenConfig(Options{Write: true, FS: env.FS})

		require.NoError(t, err)
		assert.Empty(t, result.FilesWritten)

		content, err := env.FS.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# mine\n", string(content))
	})

	t.Run("force overwrites an existing user config", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		path := env.Paths.ConfigFilePath()
		require.NoError(t, env.FS.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, env.FS.WriteFile(path, []byte("# mine\n"), 0644))

		result, err := GenConfig(Options{Write: true, Force: true, FS: env.FS})

		require.NoError(t, err)
		assert.Equal(t, []string{path}, result.FilesWritten)

		content, err := env.FS.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "# config_dir_name")
	})

	t.Run("writes vault templates into config directories", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		alpha := env.SetupVault("alpha", nil)
		beta := env.SetupVault("beta", nil)

		result, err := GenConfig(Options{
			VaultPaths: []string{alpha.Path, beta.Path},
			Write:      true,
			FS:         env.FS,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(alpha.ConfigPath, "odot.toml"),
			filepath.Join(beta.ConfigPath, "odot.toml"),
		}, result.FilesWritten)

		content, err := env.FS.ReadFile(filepath.Join(alpha.ConfigPath, "odot.toml"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "# skip = true")
	})

	t.Run("missing vault is an error", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		_, err := GenConfig(Options{
			VaultPaths: []string{filepath.Join(env.Root, "nope")},
			Write:      true,
			FS:         env.FS,
		})

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVaultNotFound))
	})
}
