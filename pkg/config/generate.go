package config

import (
	"strings"
)

// GenerateConfigContent generates the configuration file content with commented values
func GenerateConfigContent() string {
	return commentOutConfigValues(GetAppConfigContent())
}

// vaultConfigTemplate documents the per-vault overrides.
const vaultConfigTemplate = `# Per-vault odot settings. Everything here is optional.

# Exclude this vault from installs. It still shows up in list output.
# skip = true

[notes]
# Note file extension for this vault only.
# extension = ".md"
`

// GenerateVaultConfigContent returns the template written into a vault's
// odot.toml.
func GenerateVaultConfigContent() string {
	return vaultConfigTemplate
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [search], [notes]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
