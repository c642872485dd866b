// Package odot assembles the odot command tree. Command logic lives in
// pkg/commands; this package only parses flags, wires I/O and renders
// results.
package odot

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/recule556688/obsidian-dotfiles/internal/version"
	"github.com/recule556688/obsidian-dotfiles/pkg/cobrax/topics"
	backupscmd "github.com/recule556688/obsidian-dotfiles/pkg/commands/backups"
	genconfigcmd "github.com/recule556688/obsidian-dotfiles/pkg/commands/genconfig"
	installcmd "github.com/recule556688/obsidian-dotfiles/pkg/commands/install"
	linkcmd "github.com/recule556688/obsidian-dotfiles/pkg/commands/link"
	listcmd "github.com/recule556688/obsidian-dotfiles/pkg/commands/list"
	organizecmd "github.com/recule556688/obsidian-dotfiles/pkg/commands/organize"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/ui"
)

//go:embed topics/*.md
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "odot",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Bool("dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().Bool("force", false, MsgFlagForce)
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, MsgFlagQuiet)
	rootCmd.PersistentFlags().String("format", "auto", MsgFlagFormat)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newOrganizeCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newBackupsCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help from the embedded topic files
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeFS(rootCmd, sub, opts); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize help topics")
		}
	}

	return rootCmd
}

// globalFlags reads the persistent flags shared by every command.
func globalFlags(cmd *cobra.Command) (dryRun, force, quiet bool) {
	flags := cmd.Root().PersistentFlags()
	dryRun, _ = flags.GetBool("dry-run")
	force, _ = flags.GetBool("force")
	quiet, _ = flags.GetBool("quiet")
	return dryRun, force, quiet
}

// renderResult renders a command result in the configured output format.
// Quiet runs render nothing; failures inside the command are carried in
// the result and have already been logged.
func renderResult(cmd *cobra.Command, result interface{}) error {
	_, _, quiet := globalFlags(cmd)
	if quiet {
		return nil
	}

	name, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := ui.ParseFormat(name)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install [target-path...]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, force, quiet := globalFlags(cmd)
			system, _ := cmd.Flags().GetBool("system")
			noBackup, _ := cmd.Flags().GetBool("no-backup")
			source, _ := cmd.Flags().GetString("source")

			log.Info().
				Strs("targets", args).
				Bool("system", system).
				Bool("dry_run", dryRun).
				Bool("force", force).
				Msg("Installing config")

			result, err := installcmd.Install(installcmd.Options{
				TargetPaths:  args,
				SourceConfig: source,
				SystemWide:   system,
				SkipBackup:   noBackup,
				Force:        force,
				Quiet:        quiet,
				DryRun:       dryRun,
				Input:        cmd.InOrStdin(),
				Output:       cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrInstall, err)
			}

			return renderResult(cmd, result)
		},
	}

	cmd.Flags().Bool("system", false, MsgFlagSystem)
	cmd.Flags().Bool("no-backup", false, MsgFlagNoBackup)
	cmd.Flags().String("source", "", MsgFlagSource)

	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [root]",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetBool("system")
			root := ""
			if len(args) > 0 {
				root = args[0]
			}

			log.Info().Str("root", root).Bool("system", system).Msg("Listing vaults")

			result, err := listcmd.List(listcmd.Options{
				SearchRoot: root,
				SystemWide: system,
			})
			if err != nil {
				return fmt.Errorf(MsgErrList, err)
			}

			return renderResult(cmd, result)
		},
	}

	cmd.Flags().Bool("system", false, MsgFlagSystem)

	return cmd
}

func newOrganizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "organize [vault-path]",
		Short:   MsgOrganizeShort,
		Long:    MsgOrganizeLong,
		Example: MsgOrganizeExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, force, quiet := globalFlags(cmd)
			vaultPath := ""
			if len(args) > 0 {
				vaultPath = args[0]
			}

			log.Info().
				Str("vault", vaultPath).
				Bool("dry_run", dryRun).
				Msg("Organizing daily notes")

			result, err := organizecmd.Organize(organizecmd.Options{
				VaultPath: vaultPath,
				Force:     force,
				Quiet:     quiet,
				DryRun:    dryRun,
				Input:     cmd.InOrStdin(),
				Output:    cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrOrganize, err)
			}

			return renderResult(cmd, result)
		},
	}
}

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "link [vault-path]",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _, quiet := globalFlags(cmd)
			scope, _ := cmd.Flags().GetString("scope")
			vaultPath := ""
			if len(args) > 0 {
				vaultPath = args[0]
			}

			log.Info().
				Str("vault", vaultPath).
				Str("scope", scope).
				Bool("dry_run", dryRun).
				Msg("Linking daily notes")

			result, err := linkcmd.Link(linkcmd.Options{
				VaultPath: vaultPath,
				Scope:     scope,
				Quiet:     quiet,
				DryRun:    dryRun,
				Output:    cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrLink, err)
			}

			return renderResult(cmd, result)
		},
	}

	cmd.Flags().String("scope", linkcmd.ScopeVault, MsgFlagScope)

	return cmd
}

func newBackupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backups [target-path...]",
		Short:   MsgBackupsShort,
		Long:    MsgBackupsLong,
		Example: MsgBackupsExample,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetBool("system")

			log.Info().Strs("targets", args).Bool("system", system).Msg("Listing backups")

			result, err := backupscmd.Backups(backupscmd.Options{
				TargetPaths: args,
				SystemWide:  system,
			})
			if err != nil {
				return fmt.Errorf(MsgErrBackups, err)
			}

			return renderResult(cmd, result)
		},
	}

	cmd.Flags().Bool("system", false, MsgFlagSystem)

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig [vault-path...]",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, force, _ := globalFlags(cmd)
			write, _ := cmd.Flags().GetBool("write")

			result, err := genconfigcmd.GenConfig(genconfigcmd.Options{
				VaultPaths: args,
				Write:      write,
				Force:      force,
			})
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}

			return renderResult(cmd, result)
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "odot version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
