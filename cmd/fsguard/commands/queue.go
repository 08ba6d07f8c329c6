package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func (c *CLI) newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage deferred removals",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add [paths...]",
			Short: "Queue paths for removal",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return c.app.Enqueue(args)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print queued paths and their status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				pending, err := c.app.Pending()
				if err != nil {
					return err
				}
				paths := make([]string, 0, len(pending))
				for p := range pending {
					paths = append(paths, p)
				}
				slices.Sort(paths)
				for _, p := range paths {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", pending[p], p)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "drain",
			Short: "Delete every queued path once",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.app.Drain(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "run",
			Short: "Drain the queue periodically until interrupted",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.app.RunQueue(cmd.Context())
			},
		},
	)
	return cmd
}
