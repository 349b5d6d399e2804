package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/cmd/quotebook/cmd/quotes"
	"github.com/agentstation/quotebook/cmd/quotebook/cmd/remote"
	"github.com/agentstation/quotebook/cmd/quotebook/cmd/serve"
	"github.com/agentstation/quotebook/cmd/quotebook/cmd/transfer"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewRandomCommand())
	rootCmd.AddCommand(quotes.NewCurrentCommand(a))
	rootCmd.AddCommand(quotes.NewAddCommand(a))
	rootCmd.AddCommand(quotes.NewListCommand(a))
	rootCmd.AddCommand(quotes.NewCategoriesCommand(a))
	rootCmd.AddCommand(quotes.NewFilterCommand(a))
	rootCmd.AddCommand(transfer.NewImportCommand(a))
	rootCmd.AddCommand(transfer.NewExportCommand(a))

	// Remote commands
	rootCmd.AddCommand(remote.NewSyncCommand(a))
	rootCmd.AddCommand(remote.NewPushCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewRandomCommand creates the random command with app dependencies.
func (a *App) NewRandomCommand() *cobra.Command {
	return quotes.NewRandomCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("quotebook %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
