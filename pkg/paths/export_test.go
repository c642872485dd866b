package paths

// Hooks for the external test package, which cannot live in package
// paths because testutil imports it.
var (
	FindSourceRoot = findSourceRoot
	FindGitRoot    = findGitRoot
)
