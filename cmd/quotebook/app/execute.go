package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/cmd/output"
	"github.com/agentstation/quotebook/internal/config"
	"github.com/agentstation/quotebook/pkg/errors"
)

// Execute runs the quotebook CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	if a.out != nil {
		rootCmd.SetOut(a.out)
		rootCmd.SetErr(a.out)
	}
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "quotebook",
		Short:   "Categorized quote collection with remote sync",
		Version: a.version,
		Long: `Quotebook keeps a collection of categorized quotes, shows them at random,
and reconciles the collection with a remote source.

Running without a subcommand shows a random quote from the active filter.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "remote", Title: "Remote Commands:"})

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.quotebook.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("quotebook {{.Version}}\n")

	a.registerCommands(rootCmd)

	// The bare command shows a quote, like opening the page.
	random := a.NewRandomCommand()
	rootCmd.RunE = random.RunE

	return rootCmd
}

// setupCommand reloads an explicit config file and applies global flags
// before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		a.config = cfg
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints err and exits with status 1. A nil error is a no-op.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) {
		_, _ = os.Stderr.WriteString("configuration error: ")
	}
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(1)
}

// mustGetBool retrieves a flag defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a flag defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
