package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/fsguard/internal/app"
)

func (c *CLI) newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm [paths...]",
		Short: "Recursively delete paths under the inactivity watchdog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			glob, _ := cmd.Flags().GetString("glob")
			exts, _ := cmd.Flags().GetStringSlice("ext")

			outcomes, err := c.app.Delete(cmd.Context(), app.DeleteRequest{
				Paths:      args,
				Filter:     glob,
				Extensions: exts,
			})
			for _, o := range outcomes {
				if o.Path == "" {
					continue
				}
				state := "kept"
				if o.Deleted {
					state = "deleted"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d nodes\n", state, o.Path, o.Visited)
			}
			return err
		},
	}
	cmd.Flags().StringP("glob", "g", "", "Only delete nodes matching this pattern")
	cmd.Flags().StringSliceP("ext", "e", nil, "Only delete files with these extensions")
	return cmd
}
