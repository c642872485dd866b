package odot

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Keep a fleet of Obsidian vaults on one config"
	MsgInstallShort  = "Install the source config into discovered vaults"
	MsgListShort     = "List the vaults install would consider"
	MsgListLong      = "List runs the same discovery as install and shows every vault it finds, ignored ones included, without changing anything."
	MsgOrganizeShort = "Move daily notes into YYYY-MM folders"
	MsgLinkShort     = "Chain daily notes with Next links"
	MsgBackupsShort  = "List config backups created by install"
	MsgBackupsLong   = "Backups inventories the timestamped backup directories install leaves next to each target config, newest first. It never writes."
	MsgTopicsShort   = "Display available documentation topics"
	MsgTopicsLong    = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort  = "Print version information"
	MsgVersionLong   = "Print detailed version information including commit hash and build date"

	MsgCompletionShort = "Generate shell completion script"

	MsgGenConfigShort = "Generate default configuration files"
	MsgGenConfigLong  = "Output the default configuration to stdout or write it to disk.\n\nWith no arguments and -w, writes the user config file.\nWith vault paths and -w, writes an odot.toml into each vault's config directory."

	// Error messages
	MsgErrInstall   = "failed to install config: %w"
	MsgErrList      = "failed to list vaults: %w"
	MsgErrOrganize  = "failed to organize notes: %w"
	MsgErrLink      = "failed to link notes: %w"
	MsgErrBackups   = "failed to list backups: %w"
	MsgErrGenConfig = "failed to generate config: %w"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagForce    = "Skip prompts and include ignored vaults"
	MsgFlagQuiet    = "Suppress progress and summary output, keep errors"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagSystem   = "Search the whole filesystem, not just the current directory"
	MsgFlagNoBackup = "Skip the timestamped backup before overwriting"
	MsgFlagSource   = "Source config directory to install from"
	MsgFlagScope    = "Link scope: vault chains every note, folder chains each YYYY-MM folder on its own"
	MsgFlagWrite    = "Write config to file(s) instead of stdout"
)

// MsgGenConfigExample shows genconfig invocations.
const MsgGenConfigExample = `  odot genconfig                   # Print the default config
  odot genconfig -w                # Write the user config file
  odot genconfig ~/notes -w        # Write ~/notes/.obsidian/odot.toml`

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimSpace(msgInstallExampleRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimSpace(msgListExampleRaw)

	//go:embed msgs/organize-long.txt
	msgOrganizeLongRaw string
	MsgOrganizeLong    = strings.TrimSpace(msgOrganizeLongRaw)

	//go:embed msgs/organize-example.txt
	msgOrganizeExampleRaw string
	MsgOrganizeExample    = strings.TrimSpace(msgOrganizeExampleRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimSpace(msgLinkExampleRaw)

	//go:embed msgs/backups-example.txt
	msgBackupsExampleRaw string
	MsgBackupsExample    = strings.TrimSpace(msgBackupsExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
