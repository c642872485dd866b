package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recule556688/obsidian-dotfiles/pkg/paths"
	"github.com/recule556688/obsidian-dotfiles/pkg/testutil"
)

func TestFindSourceRoot(t *testing.T) {
	// Save current directory to restore later
	originalCwd, err := os.Getwd()
	testutil.AssertNoError(t, err)
	defer func() {
		_ = os.Chdir(originalCwd)
	}()

	tests := []struct {
		name           string
		setupEnv       map[string]string
		setupFunc      func(t *testing.T) string
		expectedPath   string
		expectFallback bool
		skipIfNoGit    bool
	}{
		{
			name: "ODOT_SOURCE_ROOT env var takes precedence",
			setupEnv: map[string]string{
				paths.EnvSourceRoot: "/env/notes",
			},
			expectedPath:   "/env/notes",
			expectFallback: false,
		},
		{
			name: "Git repository root discovery",
			setupFunc: func(t *testing.T) string {
				// Create a temporary git repo
				tmpDir := testutil.TempDir(t, "git-test")

				// Change to the temp directory
				err := os.Chdir(tmpDir)
				testutil.AssertNoError(t, err)

				// Initialize git repo
				testutil.RunCommand(t, "git", "init")

				// Create a subdirectory and change into it
				subDir := filepath.Join(tmpDir, "sub", "dir")
				err = os.MkdirAll(subDir, 0755)
				testutil.AssertNoError(t, err)

				err = os.Chdir(subDir)
				testutil.AssertNoError(t, err)

				return tmpDir
			},
			expectedPath:   "", // Will be set by setupFunc
			expectFallback: false,
			skipIfNoGit:    true,
		},
		{
			name: "Fallback to current directory when not in git repo",
			setupFunc: func(t *testing.T) string {
				// Create a temporary directory that's not a git repo
				tmpDir := testutil.TempDir(t, "no-git-test")

				err := os.Chdir(tmpDir)
				testutil.AssertNoError(t, err)

				return tmpDir
			},
			expectedPath:   "", // Will be set to cwd
			expectFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.skipIfNoGit && !isGitAvailable() {
				t.Skip("Git not available")
			}

			// Clear environment
			t.Setenv(paths.EnvSourceRoot, "")

			// Set up environment
			for k, v := range tt.setupEnv {
				t.Setenv(k, v)
			}

			// Run setup function if provided
			expectedPath := tt.expectedPath
			if tt.setupFunc != nil {
				result := tt.setupFunc(t)
				if expectedPath == "" {
					expectedPath = result
				}
			}

			// Test findSourceRoot
			path, usedFallback, err := paths.FindSourceRoot()
			testutil.AssertNoError(t, err)

			if expectedPath != "" {
				// Resolve symlinks for comparison
				expected, _ := filepath.EvalSymlinks(expectedPath)
				actual, _ := filepath.EvalSymlinks(path)
				testutil.AssertEqual(t, expected, actual)
			}

			testutil.AssertEqual(t, tt.expectFallback, usedFallback)
		})
	}
}

func TestGitRootFromSubdirectory(t *testing.T) {
	if !isGitAvailable() {
		t.Skip("Git not available")
	}

	// Save current directory
	originalCwd, err := os.Getwd()
	testutil.AssertNoError(t, err)
	defer func() {
		_ = os.Chdir(originalCwd)
	}()

	// Create temporary git repo
	tmpDir := testutil.TempDir(t, "git-subdir-test")

	// Initialize git repo
	err = os.Chdir(tmpDir)
	testutil.AssertNoError(t, err)
	testutil.RunCommand(t, "git", "init")

	// Create nested subdirectories
	deepPath := filepath.Join(tmpDir, "a", "b", "c", "d")
	err = os.MkdirAll(deepPath, 0755)
	testutil.AssertNoError(t, err)

	// Change to deep subdirectory
	err = os.Chdir(deepPath)
	testutil.AssertNoError(t, err)

	// Test that git root is found correctly
	gitRoot, err := paths.FindGitRoot()
	testutil.AssertNoError(t, err)

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedPath, _ := filepath.EvalSymlinks(tmpDir)
	actualPath, _ := filepath.EvalSymlinks(gitRoot)
	testutil.AssertEqual(t, expectedPath, actualPath)
}

func TestPathsWithGitDiscovery(t *testing.T) {
	if !isGitAvailable() {
		t.Skip("Git not available")
	}

	// Save current directory
	originalCwd, err := os.Getwd()
	testutil.AssertNoError(t, err)
	defer func() {
		_ = os.Chdir(originalCwd)
	}()

	// Test 1: Git repo as source root
	t.Run("git repo discovery", func(t *testing.T) {
		// Clear environment to avoid interference
		t.Setenv(paths.EnvSourceRoot, "")

		tmpDir := testutil.TempDir(t, "paths-git-test")
		err := os.Chdir(tmpDir)
		testutil.AssertNoError(t, err)
		testutil.RunCommand(t, "git", "init")

		p, err := paths.New("")
		testutil.AssertNoError(t, err)

		// Resolve symlinks for comparison
		expectedPath, _ := filepath.EvalSymlinks(tmpDir)
		actualPath, _ := filepath.EvalSymlinks(p.SourceRoot())
		testutil.AssertEqual(t, expectedPath, actualPath)
		testutil.AssertFalse(t, p.UsedFallback())
	})

	// Test 2: Fallback with warning
	t.Run("fallback to cwd", func(t *testing.T) {
		// Clear environment to avoid interference
		t.Setenv(paths.EnvSourceRoot, "")

		tmpDir := testutil.TempDir(t, "paths-no-git-test")
		err := os.Chdir(tmpDir)
		testutil.AssertNoError(t, err)

		p, err := paths.New("")
		testutil.AssertNoError(t, err)

		// Resolve symlinks for comparison
		expectedPath, _ := filepath.EvalSymlinks(tmpDir)
		actualPath, _ := filepath.EvalSymlinks(p.SourceRoot())
		testutil.AssertEqual(t, expectedPath, actualPath)
		testutil.AssertTrue(t, p.UsedFallback())
	})
}

// Helper function to check if git is available
func isGitAvailable() bool {
	_, err := paths.FindGitRoot()
	// If we're in a git repo, git is available
	if err == nil {
		return true
	}

	// Try to run git --version
	cmd := testutil.CommandAvailable("git")
	return cmd
}
