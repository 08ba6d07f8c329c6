// Package commands implements the CLI commands for fsguard.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/fsguard/internal/app"
	"go.trai.ch/fsguard/internal/build"
)

// CLI represents the command line interface for fsguard.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fsguard",
		Short:         "Filesystem operations that cannot hang silently",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "fsguard.yaml", "Path to the configuration file")
	flags.Bool("unmonitored", false, "Run operations without the inactivity watchdog")
	flags.Duration("max-inactivity", 0, "Inactivity budget before an operation is declared hung")
	flags.Duration("poll-interval", 0, "How often the watchdog checks for activity")
	flags.BoolP("verbose", "v", false, "Log every deleted node")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.loadConfig

	rootCmd.AddCommand(c.newRmCmd())
	rootCmd.AddCommand(c.newLastChangedCmd())
	rootCmd.AddCommand(c.newLsCmd())
	rootCmd.AddCommand(c.newFindCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newSuperviseCmd())
	rootCmd.AddCommand(c.newQueueCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	unmonitored, _ := flags.GetBool("unmonitored")
	maxInactivity, _ := flags.GetDuration("max-inactivity")
	pollInterval, _ := flags.GetDuration("poll-interval")
	verbose, _ := flags.GetBool("verbose")

	return c.app.LoadConfig(path, app.Overrides{
		Unmonitored:   unmonitored,
		MaxInactivity: maxInactivity,
		PollInterval:  pollInterval,
		Verbose:       verbose,
	})
}
