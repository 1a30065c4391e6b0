package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/humanutils/internal/config"
)

// Tools lists the tool names that can run on their own.
var Tools = []string{"new", "mov", "ren", "cop", "nam", "del", "rem"}

// IsTool reports whether name is one of Tools.
func IsTool(name string) bool {
	for _, t := range Tools {
		if t == name {
			return true
		}
	}
	return false
}

// NewToolCmd builds the command of a single tool. It returns nil for an
// unknown name.
func NewToolCmd(name string, streams *Streams) *cobra.Command {
	var cmd *cobra.Command
	switch name {
	case "new":
		cmd = newNewCmd(streams)
	case "mov", "ren", "cop":
		cmd = newTransferCmd(transferTools[name], streams)
	case "nam":
		cmd = newNamCmd(streams)
	case "del", "rem":
		cmd = newDelCmd(name, streams)
	default:
		return nil
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}

// NewRootCmd builds the hu command with every tool as a subcommand.
func NewRootCmd(streams *Streams) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "hu",
		Version: "dev",
		Short:   "Safer everyday file operations",
		Long: `hu bundles the human-utils tools: small replacements for touch, mkdir,
mv, cp and rm that ask before destroying anything and behave the same
whatever the trailing slashes or the state of the target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetHelpFunc(newHelpFunc(streams))

	rootCmd.AddGroup(&cobra.Group{
		ID:    "tools",
		Title: "File Operations:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "settings",
		Title: "Settings:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	for _, name := range Tools {
		toolCmd := NewToolCmd(name, streams)
		toolCmd.GroupID = "tools"
		rootCmd.AddCommand(toolCmd)
	}

	configCmd := newConfigCmd(streams)
	configCmd.GroupID = "settings"
	rootCmd.AddCommand(configCmd)

	// CLI & Tooling commands
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the hu CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(streams.Out, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				return rootCmd.Help()
			}
			return target.Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	rootCmd.AddCommand(newCompletionCmd(rootCmd, streams))

	return rootCmd
}

func newCompletionCmd(rootCmd *cobra.Command, streams *Streams) *cobra.Command {
	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for hu for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "bash",
		Short:                 "Generate the autocompletion script for bash",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletion(streams.Out)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "zsh",
		Short:                 "Generate the autocompletion script for zsh",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenZshCompletion(streams.Out)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "fish",
		Short:                 "Generate the autocompletion script for fish",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenFishCompletion(streams.Out, true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "powershell",
		Short:                 "Generate the autocompletion script for powershell",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenPowerShellCompletionWithDesc(streams.Out)
		},
	})
	return completionCmd
}

// helpStyle resolves help colors the way tool output does: the color
// flags of cmd when it has them, then the settings file.
func helpStyle(cmd *cobra.Command, streams *Streams) Style {
	opts := &StandardOptions{}
	opts.Color, _ = cmd.Flags().GetBool("color")
	opts.NoColor, _ = cmd.Flags().GetBool("no-color")

	mode := config.ColorAuto
	if paths, err := config.DefaultPaths(); err == nil {
		if settings, err := config.Load(paths.Config); err == nil {
			mode = settings.Color
		}
	}
	return NewStyle(ResolveColor(mode, opts, streams.IsTerminal))
}

// newHelpFunc returns a custom help function that colors group titles
func newHelpFunc(streams *Streams) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		writeHelp(cmd, helpStyle(cmd, streams))
	}
}

func writeHelp(cmd *cobra.Command, style Style) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(style.Section.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(style.Group.Sprint(group.Title))
		help.WriteString("\n")

		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && !c.Hidden {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	// Ungrouped subcommands, e.g. config path and config show
	hasUngrouped := false
	for _, c := range cmd.Commands() {
		if c.GroupID == "" && !c.Hidden && c.IsAvailableCommand() {
			if !hasUngrouped {
				help.WriteString(style.Section.Sprint("Additional Commands:"))
				help.WriteString("\n")
				hasUngrouped = true
			}
			fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
		}
	}
	if hasUngrouped {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(style.Section.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

// NewCommand builds the command run under name: a single tool, or hu.
func NewCommand(name string, streams *Streams) *cobra.Command {
	if cmd := NewToolCmd(name, streams); cmd != nil {
		cmd.SetHelpFunc(newHelpFunc(streams))
		return cmd
	}
	return NewRootCmd(streams)
}

// SetVersion sets the version reported by --version.
func SetVersion(cmd *cobra.Command, v string) {
	if v == "" {
		return
	}
	cmd.Version = v
	cmd.SetVersionTemplate("{{.Version}}\n")
}

// Run executes the command called name with args and returns the process
// exit code. SIGINT and SIGTERM cancel the run between mutations.
func Run(name string, args []string, streams *Streams, version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewCommand(name, streams)
	SetVersion(cmd, version)
	cmd.SetArgs(args)
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)

	if err := cmd.ExecuteContext(ctx); err != nil {
		reportError(streams.Err, err)
		return 1
	}
	return 0
}
